/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the sales ledger server. Handles
  configuration, dependency wiring and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env/environment config, then command-line flags (flags win)
  2. Pick persistence: SQLite when a db path is set, flat record files
     otherwise
  3. Restore the registry from the chosen store
  4. Configure the HTTP router and start serving
  5. On SIGINT/SIGTERM: drain connections, save a final snapshot, exit

COMMAND-LINE FLAGS:
  -port       HTTP server port (default from PORT, 8080)
  -db         SQLite database path; ":memory:" works, empty disables
  -customers  customers record file (file mode)
  -products   products record file (file mode)

PERSISTENCE MODES:
  SQLite persists everything including sales, so sale codes resume
  after a restart. File mode persists only the customer and product
  catalogs in the line-oriented legacy format; sale numbering restarts
  at 1 each run.

EXAMPLES:
  # Flat files in the working directory
  ./server

  # Everything in SQLite
  ./server -db=./data/ledger.db

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment keys
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/sales-ledger/api"
	"github.com/warp/sales-ledger/config"
	"github.com/warp/sales-ledger/ledger"
	"github.com/warp/sales-ledger/ledger/store"
	"github.com/warp/sales-ledger/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Flags override environment config
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path (empty = flat files)")
	customersFile := flag.String("customers", cfg.CustomersFile, "customers record file")
	productsFile := flag.String("products", cfg.ProductsFile, "products record file")
	flag.Parse()

	// Pick the snapshot store
	var snapshots ledger.SnapshotStore
	if *dbPath != "" {
		st, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer st.Close()
		snapshots = st
		log.Printf("Persistence: SQLite at %s", *dbPath)
	} else {
		snapshots = store.NewFiles(*customersFile, *productsFile)
		log.Printf("Persistence: record files %s / %s", *customersFile, *productsFile)
	}

	// Build the registry and restore persisted state
	registry := ledger.NewRegistry(
		store.NewMemory[string, ledger.Customer](),
		store.NewMemory[int, *ledger.Product](),
	)
	snap, err := snapshots.LoadSnapshot(context.Background())
	if err != nil {
		log.Fatalf("Failed to load persisted state: %v", err)
	}
	registry.Restore(snap)
	log.Printf("Restored %d customers, %d products, %d sales",
		len(snap.Customers), len(snap.Products), len(snap.Sales))

	handler := api.NewHandler(registry, snapshots)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Final snapshot so nothing registered since the last save is lost.
	if err := handler.Snapshots.SaveSnapshot(ctx, handler.Registry().Snapshot()); err != nil {
		log.Printf("Final snapshot failed: %v", err)
	}

	log.Println("Server stopped")
}
