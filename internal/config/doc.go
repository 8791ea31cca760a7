// Package config manages user-level settings stored at
// ~/.generate-agent/config.yaml. It provides functions to load, read, and
// write configuration keys such as the default model id and the inference
// router base URL, with DAG_* environment variables taking precedence.
package config
