package config_test

import (
	"log"
	"sync/atomic"

	"github.com/rajesh-rajagopal/megam-api/api"
	"github.com/rajesh-rajagopal/megam-api/config"
)

// A long-running caller keeps its client in step with the settings file by
// rebuilding it from OnChange. Invalid edits never reach the callback.
func ExampleConfig_OnChange() {
	cfg, err := config.LoadSettings("/etc/megam/megam.yaml")
	if err != nil {
		log.Fatal(err)
	}

	var current atomic.Pointer[api.Client]
	client, err := api.NewFromSettings(cfg.Get())
	if err != nil {
		log.Fatal(err)
	}
	current.Store(client)

	cfg.OnChange(func(_, updated config.Settings) {
		next, err := api.NewFromSettings(updated)
		if err != nil {
			log.Printf("keeping previous megam client: %v", err)
			return
		}
		current.Store(next)
	})

	// Request paths read current.Load() for every call.
	_ = current.Load()
}
