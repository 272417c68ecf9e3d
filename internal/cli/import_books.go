package cli

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mrlokans/bookclub/internal/config"
	"github.com/mrlokans/bookclub/internal/database"
	"github.com/mrlokans/bookclub/internal/database/books"
	"github.com/mrlokans/bookclub/internal/entities"
)

// ImportBooksCommand seeds the catalog from a CSV file with the columns
// isbn, title, author, year.
type ImportBooksCommand struct {
	CSVPath      string
	DatabasePath string
	Verbose      bool
	DryRun       bool
}

func NewImportBooksCommand() *ImportBooksCommand {
	return &ImportBooksCommand{}
}

func (cmd *ImportBooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-books", flag.ExitOnError)

	fs.StringVar(&cmd.CSVPath, "file", "", "Path to the books CSV file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-books -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Seed the book catalog from a CSV file.\n\n")
		fmt.Fprintf(os.Stderr, "The file must have an 'isbn,title,author,year' header row.\n")
		fmt.Fprintf(os.Stderr, "Rows whose ISBN already exists in the catalog are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-books -file books.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import-books -file books.csv -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.CSVPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportBooksCommand) Run() error {
	fmt.Println("Book Import")
	fmt.Println("===========")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	file, err := os.Open(cmd.CSVPath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)

	imported, skipped, err := cmd.importCSV(file, repo)
	if err != nil {
		return err
	}

	fmt.Printf("\nImported %d books (%d skipped)\n", imported, skipped)
	return nil
}

func (cmd *ImportBooksCommand) importCSV(r io.Reader, repo *books.Repository) (imported, skipped int, err error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < 4 || !strings.EqualFold(strings.TrimSpace(header[0]), "isbn") {
		return 0, 0, fmt.Errorf("unexpected CSV header, want 'isbn,title,author,year'")
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("failed to read CSV record on line %d: %w", line, err)
		}

		isbn := strings.TrimSpace(record[0])
		title := strings.TrimSpace(record[1])
		author := strings.TrimSpace(record[2])
		year, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping line %d: invalid year %q\n", line, record[3])
			skipped++
			continue
		}

		exists, err := repo.HasISBN(isbn)
		if err != nil {
			return imported, skipped, fmt.Errorf("failed to check ISBN %s: %w", isbn, err)
		}
		if exists {
			if cmd.Verbose {
				fmt.Printf("Skipping %s: ISBN already in catalog\n", isbn)
			}
			skipped++
			continue
		}

		if cmd.Verbose || cmd.DryRun {
			fmt.Printf("Importing %q by %s (%s, %d)\n", title, author, isbn, year)
		}

		if cmd.DryRun {
			imported++
			continue
		}

		book := &entities.Book{
			ISBN:   isbn,
			Title:  title,
			Author: author,
			Year:   year,
		}
		if err := repo.CreateBook(book); err != nil {
			return imported, skipped, fmt.Errorf("failed to create book %s: %w", isbn, err)
		}
		imported++
	}

	return imported, skipped, nil
}
