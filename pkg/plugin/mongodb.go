// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plugin

import "github.com/AleutianAI/StackForge/pkg/catalog"

// mongodbPlugin emits MongoDB plus the Mongo Express admin console.
type mongodbPlugin struct{}

func (mongodbPlugin) ID() catalog.ID { return "mongodb" }

const mongoInitJS = `// Seed database and application user.
// Executed once by the mongo entrypoint on first start.

db = db.getSiblingDB(process.env.MONGO_DB || "stack");

db.createUser({
  user: process.env.MONGO_APP_USER || "stack",
  pwd: process.env.MONGO_APP_PASSWORD || "change-me",
  roles: [{ role: "readWrite", db: db.getName() }],
});

db.createCollection("migrations");
`

func (mongodbPlugin) EmitConfig() []ConfigFile {
	return []ConfigFile{
		{Path: "init/01-init.js", Content: mongoInitJS},
	}
}

func (mongodbPlugin) EmitComposeFragment() string {
	return `  mongo:
    image: mongo:7
    restart: unless-stopped
    environment:
      MONGO_INITDB_ROOT_USERNAME: ${MONGO_ROOT_USER:-root}
      MONGO_INITDB_ROOT_PASSWORD: ${MONGO_ROOT_PASSWORD:?set in stack.env}
    volumes:
      - mongo_data:/data/db
      - mongo_config:/data/configdb
      - ./config/mongodb/init:/docker-entrypoint-initdb.d:ro
    networks:
      - database
      - backend
    healthcheck:
      test: ["CMD", "mongosh", "--quiet", "--eval", "db.adminCommand('ping')"]
      interval: 10s
      timeout: 5s
      retries: 5

  mongo-express:
    image: mongo-express:1.0
    restart: unless-stopped
    profiles: ["admin"]
    environment:
      ME_CONFIG_MONGODB_ADMINUSERNAME: ${MONGO_ROOT_USER:-root}
      ME_CONFIG_MONGODB_ADMINPASSWORD: ${MONGO_ROOT_PASSWORD:?set in stack.env}
      ME_CONFIG_MONGODB_SERVER: mongo
    ports:
      - "${MONGO_EXPRESS_PORT:-8081}:8081"
    networks:
      - database
      - frontend
    depends_on:
      - mongo
`
}

func (mongodbPlugin) EmitVolumes() []Volume {
	return []Volume{
		{Name: "mongo_data", Definition: "    driver: local\n"},
		{Name: "mongo_config", Definition: "    driver: local\n"},
	}
}

func (mongodbPlugin) EmitEnvDefaults() EnvDefaults {
	return EnvDefaults{
		Sentinel: "MONGO_",
		Block: `# mongodb: MongoDB + Mongo Express
MONGO_ROOT_USER=root
MONGO_ROOT_PASSWORD=change-me
MONGO_DB=stack
MONGO_APP_USER=stack
MONGO_APP_PASSWORD=change-me
MONGO_EXPRESS_PORT=8081
`,
	}
}

func (mongodbPlugin) EmitDocs() string {
	return `# mongodb

MongoDB 7 with Mongo Express.

- Init scripts in config/mongodb/init/ create the application database and
  user on first container start.
- Mongo Express is opt-in via the admin profile and listens on
  ` + "`MONGO_EXPRESS_PORT`" + ` (default 8081).
- Set MONGO_ROOT_PASSWORD and MONGO_APP_PASSWORD in stack.env before starting.
`
}
