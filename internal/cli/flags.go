package cli

// Flags contains the global flags shared by every command. Each root command
// instance owns its own Flags so parallel tests never share state.
type Flags struct {
	ConfigFile string
	LogLevel   string
}
