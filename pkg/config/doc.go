// Package config resolves the settings the hamstercage CLI runs with.
//
// Settings are layered, later layers win:
//
//  1. built-in defaults (hostname from the OS)
//  2. the embedded defaults.toml
//  3. the user config file ($XDG_CONFIG_HOME/hamstercage/config.toml or
//     config.yaml), or an explicit --config path
//  4. HAMSTERCAGE_DIRECTORY, HAMSTERCAGE_FILE, HAMSTERCAGE_HOSTNAME and
//     HAMSTERCAGE_COLOR
//  5. command line flags that were set explicitly
//
// Only the listed environment variables are read. The other HAMSTERCAGE_*
// names belong to the hook environment and are never treated as settings.
package config
