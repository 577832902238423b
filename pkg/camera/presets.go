package camera

// preset is a named capture size. Zero fields keep the default.
type preset struct {
	name          string
	width, height int
	framerate     int
	quality       int
}

// Landmark detection rarely keeps up with 30 FPS at 1080p.
var presets = []preset{
	{name: "default"},
	{name: "low", width: 320, height: 240},
	{name: "720p", width: 1280, height: 720},
	{name: "1080p", width: 1920, height: 1080, framerate: 15, quality: 85},
}

// PresetNames returns the available preset names in order.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.name
	}
	return names
}

// Preset returns the named capture config.
func Preset(name string) (Config, bool) {
	for _, p := range presets {
		if p.name == name {
			return p.apply(DefaultConfig()), true
		}
	}
	return Config{}, false
}

func (p preset) apply(cfg Config) Config {
	if p.width > 0 {
		cfg.Width, cfg.Height = p.width, p.height
	}
	if p.framerate > 0 {
		cfg.Framerate = p.framerate
	}
	if p.quality > 0 {
		cfg.Quality = p.quality
	}
	return cfg
}
