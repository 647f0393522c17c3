// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plugin

import "github.com/AleutianAI/StackForge/pkg/catalog"

type rabbitmqPlugin struct{}

func (rabbitmqPlugin) ID() catalog.ID { return "rabbitmq" }

const rabbitmqConfig = `# RabbitMQ configuration for the stack.
default_vhost = /
disk_free_limit.absolute = 1GB
vm_memory_high_watermark.relative = 0.6
management.tcp.port = 15672
`

func (rabbitmqPlugin) EmitConfig() []ConfigFile {
	return []ConfigFile{
		{Path: "rabbitmq.conf", Content: rabbitmqConfig},
	}
}

func (rabbitmqPlugin) EmitComposeFragment() string {
	return `  rabbitmq:
    image: rabbitmq:3.13-management-alpine
    restart: unless-stopped
    environment:
      RABBITMQ_DEFAULT_USER: ${RABBITMQ_USER:-stack}
      RABBITMQ_DEFAULT_PASS: ${RABBITMQ_PASSWORD:?set in stack.env}
    ports:
      - "${RABBITMQ_MGMT_PORT:-15672}:15672"
    volumes:
      - rabbitmq_data:/var/lib/rabbitmq
      - ./config/rabbitmq/rabbitmq.conf:/etc/rabbitmq/rabbitmq.conf:ro
    networks:
      - backend
    healthcheck:
      test: ["CMD", "rabbitmq-diagnostics", "-q", "ping"]
      interval: 15s
      timeout: 10s
      retries: 5
`
}

func (rabbitmqPlugin) EmitVolumes() []Volume {
	return []Volume{
		{Name: "rabbitmq_data", Definition: "    driver: local\n"},
	}
}

func (rabbitmqPlugin) EmitEnvDefaults() EnvDefaults {
	return EnvDefaults{
		Sentinel: "RABBITMQ_",
		Block: `# rabbitmq: message broker
RABBITMQ_USER=stack
RABBITMQ_PASSWORD=change-me
RABBITMQ_MGMT_PORT=15672
`,
	}
}

func (rabbitmqPlugin) EmitDocs() string {
	return `# rabbitmq

RabbitMQ 3.13 with the management plugin.

- AMQP is reachable from the ` + "`backend`" + ` network on port 5672 (not
  published to the host).
- The management UI is published on ` + "`RABBITMQ_MGMT_PORT`" + `
  (default 15672).
- Set RABBITMQ_PASSWORD in stack.env before starting.
`
}
