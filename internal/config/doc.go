// Package config handles configuration loading and merging for ut runners.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--format, --theme, --stack, --no-capture, etc.)
//  2. Environment variables (UT_FORMAT, UT_THEME, UT_NO_COLOR, NO_COLOR, UT_CI, CI, ...)
//  3. YAML config file (--config, else .ut.yaml in the working directory or ~/.config/ut/.ut.yaml)
//  4. Hardcoded defaults
//
// # CI Mode Behavior
//
// When CI mode is enabled (via --ci, CI=true or ci: true in YAML):
//   - Colors are disabled (monochrome theme)
//   - The live display is replaced by the terminal log
//
// # Environment Variables
//
//   - UT_NO_COLOR ("true"/"1") or NO_COLOR (any value): disable colors
//   - UT_CI or CI: enable CI mode
//   - UT_DEBUG: any non-empty value forces debug logging
//   - UT_FORMAT, UT_THEME, UT_PRINT_STACK, UT_CAPTURE_OUTPUT, UT_MAX_CAPTURE_BYTES,
//     UT_ASYNC_TIMEOUT, UT_SUMMARY, UT_METRICS_FILE, UT_LOG_LEVEL, UT_LOG_FORMAT:
//     override the matching YAML key
package config
