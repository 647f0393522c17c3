// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plugin

import "github.com/AleutianAI/StackForge/pkg/catalog"

// grafanaPlugin emits Grafana with a pre-provisioned Prometheus datasource.
// The catalog declares prometheus as a hard dependency, so the datasource
// target is always part of the same resolution.
type grafanaPlugin struct{}

func (grafanaPlugin) ID() catalog.ID { return "grafana" }

const grafanaDatasourceConfig = `apiVersion: 1

datasources:
  - name: Prometheus
    type: prometheus
    access: proxy
    url: http://prometheus:9090
    isDefault: true
    editable: false
`

func (grafanaPlugin) EmitConfig() []ConfigFile {
	return []ConfigFile{
		{Path: "provisioning/datasources/prometheus.yml", Content: grafanaDatasourceConfig},
	}
}

func (grafanaPlugin) EmitComposeFragment() string {
	return `  grafana:
    image: grafana/grafana:11.1.0
    restart: unless-stopped
    environment:
      GF_SECURITY_ADMIN_USER: ${GRAFANA_ADMIN_USER:-admin}
      GF_SECURITY_ADMIN_PASSWORD: ${GRAFANA_ADMIN_PASSWORD:?set in stack.env}
    ports:
      - "${GRAFANA_PORT:-3000}:3000"
    volumes:
      - grafana_data:/var/lib/grafana
      - ./config/grafana/provisioning:/etc/grafana/provisioning:ro
    networks:
      - monitoring
      - frontend
    depends_on:
      - prometheus
`
}

func (grafanaPlugin) EmitVolumes() []Volume {
	return []Volume{
		{Name: "grafana_data", Definition: "    driver: local\n"},
	}
}

func (grafanaPlugin) EmitEnvDefaults() EnvDefaults {
	return EnvDefaults{
		Sentinel: "GRAFANA_",
		Block: `# grafana: dashboards
GRAFANA_ADMIN_USER=admin
GRAFANA_ADMIN_PASSWORD=change-me
GRAFANA_PORT=3000
`,
	}
}

func (grafanaPlugin) EmitDocs() string {
	return `# grafana

Grafana with a provisioned Prometheus datasource.

- Listens on ` + "`GRAFANA_PORT`" + ` (default 3000).
- The Prometheus datasource is provisioned read-only from
  config/grafana/provisioning/datasources/.
- Set GRAFANA_ADMIN_PASSWORD in stack.env before starting.
`
}
