// Package config loads tooltipctl project configuration.
//
// The configuration is stored in tooltipctl.json at the project root. Every
// field is optional; a missing file yields the defaults.
//
// # Configuration File Structure
//
//	{
//	  "playground": {
//	    "addr": "localhost:7070",
//	    "readTimeout": "5m",
//	    "positioner": "basic"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "scenarios": {
//	    "dir": "scenarios"
//	  },
//	  "tooltip": {
//	    "trigger": ["hover", "focus"],
//	    "delayShow": 150
//	  }
//	}
//
// The tooltip object uses the scenario file schema: delays in milliseconds
// and the same deprecated aliases.
//
// # Usage
//
//	cfg, err := config.LoadOptional(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.Logger(os.Stderr)
package config
