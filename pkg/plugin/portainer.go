// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plugin

import "github.com/AleutianAI/StackForge/pkg/catalog"

// portainerPlugin emits the Portainer container management UI. It owns no
// config files; Portainer configures itself on first login.
type portainerPlugin struct{}

func (portainerPlugin) ID() catalog.ID { return "portainer" }

func (portainerPlugin) EmitConfig() []ConfigFile {
	return nil
}

func (portainerPlugin) EmitComposeFragment() string {
	return `  portainer:
    image: portainer/portainer-ce:2.20-alpine
    restart: unless-stopped
    profiles: ["admin"]
    ports:
      - "${PORTAINER_PORT:-9443}:9443"
    volumes:
      - portainer_data:/data
      - /var/run/docker.sock:/var/run/docker.sock
    networks:
      - monitoring
`
}

func (portainerPlugin) EmitVolumes() []Volume {
	return []Volume{
		{Name: "portainer_data", Definition: "    driver: local\n"},
	}
}

func (portainerPlugin) EmitEnvDefaults() EnvDefaults {
	return EnvDefaults{
		Sentinel: "PORTAINER_",
		Block: `# portainer: container management UI
PORTAINER_PORT=9443
`,
	}
}

func (portainerPlugin) EmitDocs() string {
	return `# portainer

Portainer CE container management UI.

- Opt-in via the admin profile; listens on ` + "`PORTAINER_PORT`" + `
  (default 9443, HTTPS).
- Mounts the host docker socket; treat access to this UI as root-equivalent
  on the host.
`
}
