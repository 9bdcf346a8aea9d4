package config

import "time"

// Base application details
const AppName = "sprig"
const ConfigDirName = "sprig"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "sprig.log"
const DefaultDiagramExt = ".toml"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Layout units per terminal cell. A default row pitch of 48 spans three
// terminal rows.
const DefaultCellWidth = 8
const DefaultCellHeight = 16

// Theme
const DefaultThemeName = "Sprig Dark"
const ThemesDirName = "themes"

const DefaultHistoryCapacity = 100
const SystemClipboard = true
const KeepLastNode = true

const DefaultAutosaveEvery = 20
