// Package config loads layered application configuration (defaults, YAML
// file, environment variables) for recoengine using Koanf v2, following the
// same loading order as the teacher project's configuration package.
package config
