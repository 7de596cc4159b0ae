// Package config provides configuration parsing for vdomctl.
//
// The configuration is stored in vdomctl.yaml in the working directory or
// one of its parents. Missing files fall back to defaults.
//
// # Configuration File Structure
//
//	log:
//	  level: debug
//	serve:
//	  addr: localhost:7070
//	  allowedOrigins:
//	    - http://localhost:5173
//	metrics:
//	  namespace: vdom
//	  subsystem: render
//	tracing:
//	  tracerName: vdomctl
//	output:
//	  minify: true
//	  color: false
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Serve.Addr)
package config
