// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plugin

import "github.com/AleutianAI/StackForge/pkg/catalog"

type prometheusPlugin struct{}

func (prometheusPlugin) ID() catalog.ID { return "prometheus" }

const prometheusConfig = `global:
  scrape_interval: 15s
  evaluation_interval: 15s

scrape_configs:
  - job_name: prometheus
    static_configs:
      - targets: ["localhost:9090"]

  - job_name: haproxy
    static_configs:
      - targets: ["haproxy:8404"]

  - job_name: rabbitmq
    static_configs:
      - targets: ["rabbitmq:15692"]
`

func (prometheusPlugin) EmitConfig() []ConfigFile {
	return []ConfigFile{
		{Path: "prometheus.yml", Content: prometheusConfig},
	}
}

func (prometheusPlugin) EmitComposeFragment() string {
	return `  prometheus:
    image: prom/prometheus:v2.53.0
    restart: unless-stopped
    command:
      - --config.file=/etc/prometheus/prometheus.yml
      - --storage.tsdb.retention.time=${PROM_RETENTION:-15d}
    volumes:
      - prometheus_data:/prometheus
      - ./config/prometheus/prometheus.yml:/etc/prometheus/prometheus.yml:ro
    networks:
      - monitoring
      - backend
    healthcheck:
      test: ["CMD", "wget", "-q", "--spider", "http://localhost:9090/-/healthy"]
      interval: 15s
      timeout: 5s
      retries: 5
`
}

func (prometheusPlugin) EmitVolumes() []Volume {
	return []Volume{
		{Name: "prometheus_data", Definition: "    driver: local\n"},
	}
}

func (prometheusPlugin) EmitEnvDefaults() EnvDefaults {
	return EnvDefaults{
		Sentinel: "PROM_",
		Block: `# prometheus: metrics store
PROM_RETENTION=15d
`,
	}
}

func (prometheusPlugin) EmitDocs() string {
	return `# prometheus

Prometheus metrics store.

- Scrapes itself plus the stack exporters it can reach on the
  ` + "`backend`" + ` network; targets that are not deployed simply stay down.
- Retention defaults to ` + "`PROM_RETENTION`" + ` (15d).
- The web UI is not published to the host; front it with Grafana or add a
  port mapping in a compose override.
`
}
