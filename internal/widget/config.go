package widget

const (
	DefaultGreeting    = "Hello, I’m Typhoon. Ask me about modern fighter jets."
	DefaultPlaceholder = "Typing…"
	DefaultFallback    = "No response returned."
	DefaultErrorPrefix = "Typhoon hit an error: "
)

// Config selects the widget variant. The zero value is the minimal widget
// with the default texts.
type Config struct {
	ShowAvatar bool
	AllowClear bool

	Greeting        string
	PlaceholderText string
	FallbackText    string
	ErrorPrefix     string
}

// DefaultConfig is the extended widget: avatars and a clear action.
func DefaultConfig() Config {
	return Config{ShowAvatar: true, AllowClear: true}.withDefaults()
}

// MinimalConfig is the bare widget without avatars or clear.
func MinimalConfig() Config {
	cfg := Config{}.withDefaults()
	cfg.PlaceholderText = "Thinking…"
	return cfg
}

func (c Config) withDefaults() Config {
	if c.Greeting == "" {
		c.Greeting = DefaultGreeting
	}
	if c.PlaceholderText == "" {
		c.PlaceholderText = DefaultPlaceholder
	}
	if c.FallbackText == "" {
		c.FallbackText = DefaultFallback
	}
	if c.ErrorPrefix == "" {
		c.ErrorPrefix = DefaultErrorPrefix
	}
	return c
}
