// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plugin

import "github.com/AleutianAI/StackForge/pkg/catalog"

type redisPlugin struct{}

func (redisPlugin) ID() catalog.ID { return "redis" }

const redisConfig = `# Redis configuration for the stack.
appendonly yes
appendfsync everysec
maxmemory 256mb
maxmemory-policy allkeys-lru
`

func (redisPlugin) EmitConfig() []ConfigFile {
	return []ConfigFile{
		{Path: "redis.conf", Content: redisConfig},
	}
}

func (redisPlugin) EmitComposeFragment() string {
	return `  redis:
    image: redis:7-alpine
    restart: unless-stopped
    command: ["redis-server", "/usr/local/etc/redis/redis.conf", "--requirepass", "${REDIS_PASSWORD:?set in stack.env}"]
    volumes:
      - redis_data:/data
      - ./config/redis/redis.conf:/usr/local/etc/redis/redis.conf:ro
    networks:
      - backend
    healthcheck:
      test: ["CMD", "redis-cli", "-a", "${REDIS_PASSWORD}", "ping"]
      interval: 10s
      timeout: 3s
      retries: 5
`
}

func (redisPlugin) EmitVolumes() []Volume {
	return []Volume{
		{Name: "redis_data", Definition: "    driver: local\n"},
	}
}

func (redisPlugin) EmitEnvDefaults() EnvDefaults {
	return EnvDefaults{
		Sentinel: "REDIS_",
		Block: `# redis: in-memory cache
REDIS_PASSWORD=change-me
`,
	}
}

func (redisPlugin) EmitDocs() string {
	return `# redis

Redis 7 with append-only persistence.

- Reachable from the ` + "`backend`" + ` network only; no host port is
  published.
- Memory is capped at 256mb with allkeys-lru eviction; tune
  config/redis/redis.conf for your workload.
- Set REDIS_PASSWORD in stack.env before starting.
`
}
