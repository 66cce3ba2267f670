/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"

	"golibrarian/internal/config"
	"golibrarian/internal/crash"
	applog "golibrarian/internal/log"
	"golibrarian/internal/storage"
	"golibrarian/internal/ui"
	"golibrarian/internal/version"
)

func main() {
	cfg, remembered, err := config.Load()
	if err != nil {
		// fall back to defaults; the config dir may be unresolvable
		cfg = config.Defaults()
	}
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("main")

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			fmt.Println("GoLibrarian — library catalog")
			fmt.Println(version.String())
			return
		}
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = storage.DefaultPath()
	}
	defer crash.Recover(dbPath)

	l.Info("launching", slog.String("db", dbPath))
	if err := ui.Run(ui.Options{DBPath: dbPath, Config: cfg, RememberedUser: remembered}); err != nil {
		l.Error("ui failed", slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
