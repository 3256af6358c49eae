// main.go
//
// Production scheduling and order file service for the metalworking shop floor
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of shopfloor.
// shopfloor is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// shopfloor is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with shopfloor.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/localnerve/shopfloor/internal/config"
	"github.com/localnerve/shopfloor/internal/database"
	"github.com/localnerve/shopfloor/internal/services"
	"github.com/localnerve/shopfloor/internal/storage"
	"github.com/localnerve/shopfloor/internal/utils"
)

func main() {
	var checkServer bool
	flag.BoolVar(&checkServer, "server", false, "also check the local HTTP listener on PORT")
	var skipStorage bool
	flag.BoolVar(&skipStorage, "skip-storage", false, "do not check file storage")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	var store storage.Store
	if !skipStorage {
		if store, err = storage.New(cfg); err != nil {
			log.Fatalf("Failed to create storage client: %v", err)
		}
	}

	// Perform health check
	result := services.HealthCheck(context.Background(), cfg, db, store)

	if checkServer {
		if err := utils.PingServer(cfg.Port, cfg.HealthcheckTimeout); err != nil {
			result.Status = "unhealthy"
			result.Details["server_error"] = err.Error()
		} else {
			result.Details["server"] = "ok"
		}
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		database.Close(db)
		os.Exit(1)
	}
}
