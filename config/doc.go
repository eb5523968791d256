// Package config loads the champstandings configuration file and watches
// input files for changes.
//
// Load(path) applies defaults (2 drop weeks, the 25-18-15-12-10-8-6-4-2-1
// points table, yaml output, :8080, a local SQLite archive), parses the YAML
// file over them and validates the result. Scoring() converts the file into
// the engine's standings.Config.
//
// Watch(ctx, paths, onChange, logger) uses fsnotify on the parent
// directories of paths and reports writes and re-creations of those files.
package config
