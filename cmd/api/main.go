package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apiadvisor "saas_simulator/pkg/api/advisor"
	apiconfig "saas_simulator/pkg/api/config"
	apiexport "saas_simulator/pkg/api/export"
	"saas_simulator/pkg/api/scenario"
	"saas_simulator/pkg/api/simulation"
	coreadvisor "saas_simulator/pkg/core/advisor"
	"saas_simulator/pkg/core/agent"
	"saas_simulator/pkg/core/prompt"
	"saas_simulator/pkg/core/store"
)

func main() {
	godotenv.Load()

	// Prompt library for the advisory feature; falls back to hardcoded
	// prompts when resources/ is not shipped alongside the binary.
	if err := prompt.LoadFromDirectory("resources/prompts"); err != nil {
		fmt.Printf("[WARNING] prompt library not loaded: %v\n", err)
	}

	// Provider configuration.
	var agentCfg agent.Config
	if data, err := os.ReadFile("config/models.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &agentCfg); err != nil {
			fmt.Printf("[WARNING] bad config/models.yaml: %v\n", err)
		}
	} else {
		fmt.Println("[WARNING] config/models.yaml not found, using defaults")
	}
	agentMgr := agent.NewManager(agentCfg)
	fmt.Printf("[agent] active provider: %s\n", agentMgr.ActiveProvider())

	// Advisory cache is optional; without REDIS_ADDR every review hits the
	// provider directly.
	var cache *coreadvisor.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = coreadvisor.NewCache(addr)
		fmt.Printf("[advisor] caching responses at %s\n", addr)
	}
	adv := coreadvisor.New(agentMgr, cache)

	// Engine endpoints. Pure functions behind them, no shared state.
	http.HandleFunc("/api/simulation/run", simulation.HandleRun)
	http.HandleFunc("/api/simulation/snapshot", simulation.HandleSnapshot)
	http.HandleFunc("/api/export/csv", apiexport.HandleCSV)

	// Advisory endpoints.
	advisorHandler := apiadvisor.NewHandler(adv)
	http.HandleFunc("/api/advisor/review", advisorHandler.HandleReview)

	configHandler := apiconfig.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Scenario persistence is only wired when a database is configured.
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] database unavailable, scenarios disabled: %v\n", err)
		} else {
			defer store.Close()
			scenarioHandler := scenario.NewHandler(store.NewScenarioRepo())
			http.HandleFunc("/api/scenarios", scenarioHandler.HandleScenarios)
			http.HandleFunc("/api/scenario", scenarioHandler.HandleScenario)
			fmt.Println("[store] scenario persistence enabled")
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("[api] listening on :%s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] server stopped: %v\n", err)
		os.Exit(1)
	}
}
