/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// shelfctl is the headless maintenance surface for the catalog: listing,
// adding, importing and exporting books, plus a credential check. It operates
// on the same database file as the desktop app.
package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"golibrarian/internal/config"
	"golibrarian/internal/domain"
	"golibrarian/internal/export"
	"golibrarian/internal/importer"
	applog "golibrarian/internal/log"
	"golibrarian/internal/storage"
	"golibrarian/internal/version"
)

var dbPath string

func main() {
	applog.Init(applog.FromEnv())

	root := &cobra.Command{
		Use:           "shelfctl",
		Short:         "Maintain the GoLibrarian catalog from the command line",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "catalog database file (default: configured path)")

	root.AddCommand(listCmd(), addCmd(), summaryCmd(), importCmd(), exportCmd(), verifyCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openStore resolves the database path (flag, then config/env, then platform
// default) and opens it.
func openStore() (*storage.Store, error) {
	path := dbPath
	if path == "" {
		cfg, _, err := config.Load()
		if err == nil {
			path = cfg.Database.Path
		}
	}
	if path == "" {
		path = storage.DefaultPath()
	}
	return storage.Open(path)
}

func listCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog rows, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			books, err := s.FetchBooks(cmd.Context(), search)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tCATEGORY\tYEAR\tCOPIES\tAVAILABLE\tCREATED")
			for _, b := range books {
				year := ""
				if b.Year != nil {
					year = fmt.Sprint(*b.Year)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
					b.ID, b.Title, b.Author, b.Category, year, b.Copies, b.Available, b.CreatedAt)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive substring over title/author/category")
	return cmd
}

func addCmd() *cobra.Command {
	var p domain.Payload
	var year int
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p.Title = strings.TrimSpace(p.Title)
			p.Author = strings.TrimSpace(p.Author)
			if p.Title == "" || p.Author == "" {
				return fmt.Errorf("title and author are required")
			}
			if cmd.Flags().Changed("year") {
				p.Year = &year
			}
			importer.Normalize(&p)

			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.AddBook(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Printf("Added book %d: %s\n", id, p.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&p.Title, "title", "", "book title (required)")
	cmd.Flags().StringVar(&p.Author, "author", "", "book author (required)")
	cmd.Flags().StringVar(&p.Category, "category", "", "category")
	cmd.Flags().IntVar(&year, "year", 0, "publication year")
	cmd.Flags().IntVar(&p.Copies, "copies", 1, "total copies")
	cmd.Flags().IntVar(&p.Available, "available", 1, "copies on the shelf")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	return cmd
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print aggregate catalog statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			sum, err := s.Summary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Total books:      %d\n", sum.Total)
			fmt.Printf("Available copies: %d\n", sum.Available)
			fmt.Printf("Total copies:     %d\n", sum.Copies)
			fmt.Printf("Issued titles:    %d\n", sum.Issued)
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <books.json>",
		Short: "Bulk-import books from a schema-validated JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payloads, err := importer.ParseFile(args[0])
			if err != nil {
				return err
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			for _, p := range payloads {
				if _, err := s.AddBook(cmd.Context(), p); err != nil {
					return err
				}
			}
			fmt.Printf("Imported %d books\n", len(payloads))
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var format, out, search string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the (optionally filtered) catalog to CSV or PDF",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			books, err := s.FetchBooks(cmd.Context(), search)
			if err != nil {
				return err
			}

			switch format {
			case "csv":
				if out == "" {
					out = export.CSVPathFor(s.Path())
				}
				err = export.WriteCSV(out, books)
			case "pdf":
				if out == "" {
					out = export.PDFPathFor(s.Path())
				}
				err = export.WriteCatalogPDF(out, books)
			default:
				return fmt.Errorf("unknown format %q (want csv or pdf)", format)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d rows to %s\n", len(books), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "export format: csv or pdf")
	cmd.Flags().StringVar(&out, "out", "", "output path (default: next to the database)")
	cmd.Flags().StringVar(&search, "search", "", "filter rows before exporting")
	return cmd
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <username>",
		Short: "Check credentials against the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("Password: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ok, err := s.VerifyUser(cmd.Context(), args[0], strings.TrimSpace(string(raw)))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("invalid credentials")
			}
			fmt.Println("OK")
			return nil
		},
	}
}
