// Package config provides configuration parsing for the universal renderer.
//
// The configuration is stored in universal.json at the project root.
// universal.yaml and universal.yml are accepted as well. This package
// handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "appSelector": "<app-root></app-root>",
//	  "document": "<html><head></head><body><app-root></app-root></body></html>",
//	  "module": {
//	    "id": "app",
//	    "template": "app.html",
//	    "styles": ["app.css"]
//	  },
//	  "stabilityTimeout": "30s",
//	  "cache": { "maxEntries": 64 },
//	  "resources": { "root": "web", "manifest": "web/manifest.json" },
//	  "server": { "addr": ":4000" },
//	  "watch": true,
//	  "logLevel": "info"
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Server.Addr)
package config
