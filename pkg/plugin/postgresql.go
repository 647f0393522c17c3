// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plugin

import "github.com/AleutianAI/StackForge/pkg/catalog"

// postgresqlPlugin emits PostgreSQL plus the pgAdmin admin console.
// pgAdmin is gated behind the "admin" compose profile.
type postgresqlPlugin struct{}

func (postgresqlPlugin) ID() catalog.ID { return "postgresql" }

const postgresInitSQL = `-- Seed schema for the stack database.
-- Executed once by the postgres entrypoint on first start.

CREATE SCHEMA IF NOT EXISTS app;

CREATE TABLE IF NOT EXISTS app.migrations (
    id         serial PRIMARY KEY,
    name       text NOT NULL UNIQUE,
    applied_at timestamptz NOT NULL DEFAULT now()
);
`

const pgadminServersJSON = `{
  "Servers": {
    "1": {
      "Name": "stack",
      "Group": "StackForge",
      "Host": "postgres",
      "Port": 5432,
      "MaintenanceDB": "postgres",
      "Username": "stack",
      "SSLMode": "prefer"
    }
  }
}
`

func (postgresqlPlugin) EmitConfig() []ConfigFile {
	return []ConfigFile{
		{Path: "init/01-init.sql", Content: postgresInitSQL},
		{Path: "pgadmin/servers.json", Content: pgadminServersJSON},
	}
}

func (postgresqlPlugin) EmitComposeFragment() string {
	return `  postgres:
    image: postgres:16-alpine
    restart: unless-stopped
    environment:
      POSTGRES_USER: ${POSTGRES_USER:-stack}
      POSTGRES_PASSWORD: ${POSTGRES_PASSWORD:?set in stack.env}
      POSTGRES_DB: ${POSTGRES_DB:-stack}
    volumes:
      - postgres_data:/var/lib/postgresql/data
      - ./config/postgresql/init:/docker-entrypoint-initdb.d:ro
    networks:
      - database
      - backend
    healthcheck:
      test: ["CMD-SHELL", "pg_isready -U ${POSTGRES_USER:-stack}"]
      interval: 10s
      timeout: 5s
      retries: 5

  pgadmin:
    image: dpage/pgadmin4:8
    restart: unless-stopped
    profiles: ["admin"]
    environment:
      PGADMIN_DEFAULT_EMAIL: ${PGADMIN_EMAIL:-admin@stack.local}
      PGADMIN_DEFAULT_PASSWORD: ${PGADMIN_PASSWORD:?set in stack.env}
    ports:
      - "${PGADMIN_PORT:-5050}:80"
    volumes:
      - pgadmin_data:/var/lib/pgadmin
      - ./config/postgresql/pgadmin/servers.json:/pgadmin4/servers.json:ro
    networks:
      - database
      - frontend
    depends_on:
      - postgres
`
}

func (postgresqlPlugin) EmitVolumes() []Volume {
	return []Volume{
		{Name: "postgres_data", Definition: "    driver: local\n"},
		{Name: "pgadmin_data", Definition: "    driver: local\n"},
	}
}

func (postgresqlPlugin) EmitEnvDefaults() EnvDefaults {
	return EnvDefaults{
		Sentinel: "POSTGRES_",
		Block: `# postgresql: PostgreSQL + pgAdmin
POSTGRES_USER=stack
POSTGRES_PASSWORD=change-me
POSTGRES_DB=stack
PGADMIN_EMAIL=admin@stack.local
PGADMIN_PASSWORD=change-me
PGADMIN_PORT=5050
`,
	}
}

func (postgresqlPlugin) EmitDocs() string {
	return `# postgresql

PostgreSQL 16 with pgAdmin.

- The database joins the ` + "`database`" + ` and ` + "`backend`" + ` networks;
  only services on those networks can reach it.
- Init scripts in config/postgresql/init/ run on first container start.
- pgAdmin is opt-in: ` + "`docker compose --profile admin up -d`" + `,
  then browse to port ` + "`PGADMIN_PORT`" + ` (default 5050).
- Set POSTGRES_PASSWORD and PGADMIN_PASSWORD in stack.env before starting.
`
}
