package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	edura "github.com/edura-app/edura-go"
	"github.com/edura-app/edura-go/services"
)

var (
	flagType     string
	flagFileType string
	flagLanguage string
	flagSchool   string
	flagCategory string
	flagPage     int
	flagLimit    int

	flagOutput string

	flagTitle       string
	flagUploadImage string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		filters := services.DocumentFilters{
			Type:       flagType,
			FileType:   flagFileType,
			Language:   flagLanguage,
			SchoolID:   flagSchool,
			CategoryID: flagCategory,
		}

		docs, err := client.Documents.List(cmd.Context(), query, filters, flagPage, flagLimit)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Println("no documents found")
			return nil
		}
		for _, doc := range docs {
			printDocument(doc)
		}
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <document-id>",
	Short: "Show one document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := client.Documents.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printDocument(*doc)
		fmt.Printf("  raw: %s\n", client.Documents.RawURL(doc.Key()))
		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <document-id>",
	Short: "Download a document's file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := client.Documents.DownloadToFile(cmd.Context(), args[0], flagOutput)
		if err != nil {
			return err
		}
		info, statErr := os.Stat(path)
		if statErr == nil {
			fmt.Printf("%s wrote %s (%s)\n", color.GreenString("ok:"), path, humanize.Bytes(uint64(info.Size())))
		} else {
			fmt.Printf("%s wrote %s\n", color.GreenString("ok:"), path)
		}
		return nil
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		title := flagTitle
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}

		var image *os.File
		imageName := ""
		if flagUploadImage != "" {
			image, err = os.Open(flagUploadImage)
			if err != nil {
				return err
			}
			defer image.Close()
			imageName = filepath.Base(flagUploadImage)
		}

		var doc *edura.Document
		if image != nil {
			doc, err = client.Documents.Upload(cmd.Context(), f, filepath.Base(args[0]), title, flagSchool, flagCategory, image, imageName)
		} else {
			doc, err = client.Documents.Upload(cmd.Context(), f, filepath.Base(args[0]), title, flagSchool, flagCategory, nil, "")
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s uploaded %q (%s)\n", color.GreenString("ok:"), doc.Title, doc.Key())
		return nil
	},
}

func printDocument(doc edura.Document) {
	title := color.New(color.Bold).Sprint(doc.Title)
	fmt.Printf("%s  %s\n", doc.Key(), title)

	details := []string{}
	if doc.SchoolName != "" {
		details = append(details, doc.SchoolName)
	}
	if doc.Views > 0 {
		details = append(details, fmt.Sprintf("%s views", humanize.Comma(int64(doc.Views))))
	}
	if doc.Pages > 0 {
		details = append(details, fmt.Sprintf("%d pages", doc.Pages))
	}
	if doc.Uploader != "" {
		details = append(details, "by "+doc.Uploader)
	}
	if t, err := time.Parse(time.RFC3339, doc.CreatedAt); err == nil {
		details = append(details, humanize.Time(t))
	}
	if len(details) > 0 {
		fmt.Printf("  %s\n", strings.Join(details, " · "))
	}
}

func init() {
	searchCmd.Flags().StringVar(&flagType, "type", "", "document type filter")
	searchCmd.Flags().StringVar(&flagFileType, "file-type", "", "file type filter (pdf, docx, ...)")
	searchCmd.Flags().StringVar(&flagLanguage, "language", "", "language filter")
	searchCmd.Flags().StringVar(&flagSchool, "school", "", "school id filter")
	searchCmd.Flags().StringVar(&flagCategory, "category", "", "category id filter")
	searchCmd.Flags().IntVar(&flagPage, "page", 1, "result page")
	searchCmd.Flags().IntVar(&flagLimit, "limit", 12, "page size")

	downloadCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output path (defaults to document.pdf)")

	uploadCmd.Flags().StringVar(&flagTitle, "title", "", "document title (defaults to the file name)")
	uploadCmd.Flags().StringVar(&flagSchool, "school", "", "school id")
	uploadCmd.Flags().StringVar(&flagCategory, "category", "", "category id")
	uploadCmd.Flags().StringVar(&flagUploadImage, "image", "", "optional cover image file")

	rootCmd.AddCommand(searchCmd, getCmd, downloadCmd, uploadCmd)
}
