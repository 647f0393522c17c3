// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plugin

import "github.com/AleutianAI/StackForge/pkg/catalog"

// corePlugin emits the HAProxy edge router and the Nginx static frontend.
type corePlugin struct{}

func (corePlugin) ID() catalog.ID { return "core" }

const coreHAProxyConfig = `global
    log stdout format raw local0
    maxconn 4096

defaults
    mode http
    log global
    option httplog
    timeout connect 5s
    timeout client 30s
    timeout server 30s

frontend http_in
    bind *:80
    default_backend web_static

backend web_static
    balance roundrobin
    option httpchk GET /healthz
    server nginx nginx:8080 check
`

const coreNginxConfig = `worker_processes auto;

events {
    worker_connections 1024;
}

http {
    include       mime.types;
    default_type  application/octet-stream;
    sendfile      on;

    server {
        listen 8080;
        root /usr/share/nginx/html;

        location /healthz {
            access_log off;
            return 200 "ok\n";
        }

        location / {
            try_files $uri $uri/ /index.html;
        }
    }
}
`

func (corePlugin) EmitConfig() []ConfigFile {
	return []ConfigFile{
		{Path: "haproxy/haproxy.cfg", Content: coreHAProxyConfig},
		{Path: "nginx/nginx.conf", Content: coreNginxConfig},
	}
}

func (corePlugin) EmitComposeFragment() string {
	return `  haproxy:
    image: haproxy:2.9-alpine
    restart: unless-stopped
    ports:
      - "${HAPROXY_HTTP_PORT:-80}:80"
    volumes:
      - ./config/core/haproxy/haproxy.cfg:/usr/local/etc/haproxy/haproxy.cfg:ro
    networks:
      - frontend
      - backend
    depends_on:
      - nginx

  nginx:
    image: nginx:1.27-alpine
    restart: unless-stopped
    volumes:
      - ./config/core/nginx/nginx.conf:/etc/nginx/nginx.conf:ro
      - ./static:/usr/share/nginx/html:ro
    networks:
      - frontend
`
}

func (corePlugin) EmitVolumes() []Volume {
	// Static content is bind-mounted from the workspace; no named volumes.
	return nil
}

func (corePlugin) EmitEnvDefaults() EnvDefaults {
	return EnvDefaults{
		Sentinel: "HAPROXY_",
		Block: `# core: HAProxy edge router + Nginx static frontend
HAPROXY_HTTP_PORT=80
`,
	}
}

func (corePlugin) EmitDocs() string {
	return `# core

HAProxy edge router fronting an Nginx static file server.

- HAProxy listens on ` + "`HAPROXY_HTTP_PORT`" + ` (default 80) and balances
  to the internal Nginx backend with an HTTP health check on /healthz.
- Static content is served from the workspace ` + "`static/`" + ` directory.
- Edit config/core/haproxy/haproxy.cfg to add backends.
`
}
