package main

import (
	"log"
	"os/exec"
	"runtime"
	"time"

	"github.com/joho/godotenv"

	"waradvisor/adapters/refdata"
	"waradvisor/app"
	"waradvisor/internal/config"
	"waradvisor/ports"
	"waradvisor/ui"
)

// browserDelay gives the server a moment to bind before the browser asks
// for the page.
const browserDelay = 1500 * time.Millisecond

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := loadStore(appConfig)
	if err != nil {
		log.Fatalf("Failed to load reference data: %v", err)
	}
	log.Printf("Reference data ready: %d units, %d strategies (dataset %s)",
		len(store.Units()), len(store.Strategies()), store.Fingerprint().Short())

	var data ports.ReferenceData = store
	if appConfig.Data.HasMaxAdjustment() {
		log.Printf("Affinity adjustment bound overridden to %.3f", appConfig.Data.MaxAdjustment)
		data = refdata.WithMaxAdjustment(store, appConfig.Data.MaxAdjustment)
	}

	server := ui.NewServer(app.NewAdvisorService(data))

	if appConfig.Server.OpenBrowser {
		go openBrowserAfter(appConfig.Server.URL(), browserDelay)
	}

	log.Printf("🚀 Starting War Advisor on http://%s", appConfig.Server.Addr())
	log.Fatal(server.Start(appConfig.Server.Addr()))
}

// loadStore builds the reference data store: an external dataset directory
// when DATA_DIR is set, the embedded dataset otherwise.
func loadStore(appConfig *config.Config) (*refdata.Store, error) {
	if appConfig.Data.Dir != "" {
		log.Printf("Loading reference data from %s", appConfig.Data.Dir)
		return refdata.Load(appConfig.Data.Dir)
	}
	return refdata.DefaultStore()
}

func openBrowserAfter(url string, delay time.Duration) {
	time.Sleep(delay)
	if err := openBrowser(url); err != nil {
		log.Printf("Could not open browser: %v", err)
	}
}

// openBrowser opens the specified URL in the default browser
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
