package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"catalog-go/internal/app"
	"catalog-go/internal/catalog"
	"catalog-go/internal/config"
	"catalog-go/internal/encryption"
)

func main() {
	// .env is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var assumeYes bool

// loadConfig reads the config file named by the defaults.
func loadConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// withApp builds a CatalogApp for the command, runs fn, and records its
// outcome before closing the app.
// command identifies the CLI command being run (e.g. "AddProduct", "ExportProducts").
func withApp(command string, fn func(cmd *cobra.Command, args []string, a *app.CatalogApp) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := app.NewCatalogApp(cmd.Context(), cfg, command, strings.Join(args, " "), app.NewTerminalConfirmer(assumeYes))
		if err != nil {
			return fmt.Errorf("initializing app: %w", err)
		}
		defer a.Close()

		return a.Finish(fn(cmd, args, a))
	}
}

var rootCmd = &cobra.Command{
	Use:          "catalog",
	Short:        "WooCommerce product catalog editor",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Store:       %s %s\n", cfg.Store.Type, cfg.Store.DataDir)
		fmt.Printf("Destination: %s (%s)\n", cfg.Destination.Name, cfg.Destination.Type)
		fmt.Printf("Encryption:  %s\n", cfg.Encryption.Type)
		fmt.Printf("Export Name: %s\n", cfg.Export.Name)
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage export encryption keys",
}

var configKeysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the export encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			return fmt.Errorf("creating encryptor: %w", err)
		}

		passphrase, err := app.ReadPassphrase("New passphrase: ")
		if err != nil {
			return err
		}
		again, err := app.ReadPassphrase("Repeat passphrase: ")
		if err != nil {
			return err
		}
		if passphrase != again {
			return fmt.Errorf("passphrases do not match")
		}

		if err := enc.Setup(passphrase); err != nil {
			return fmt.Errorf("setting up keys: %w", err)
		}
		fmt.Printf("Keys written to %s and %s\n", cfg.Encryption.PublicKeyPath, cfg.Encryption.PrivateKeyPath)
		return nil
	},
}

// product command
var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage products",
}

// addDraftFlags registers the product field flags on cmd.
func addDraftFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("sku", "", "Product SKU (required)")
	f.String("name", "", "Product name (required)")
	f.String("price", "", "Regular price, e.g. 19.99 (required)")
	f.String("description", "", "Full description")
	f.String("short-description", "", "Short description")
	f.String("category", "", "Category from the saved list")
	f.String("new-category", "", "New category path, e.g. \"Clothing > Hats\"")
	f.String("tags", "", "Comma-separated tags")
	f.String("brand", "", "Brand")
	f.String("seo-description", "", "SEO meta description (160 characters recommended)")
	f.String("focus-keyword", "", "SEO focus keyword")
	cmd.MarkFlagsMutuallyExclusive("category", "new-category")
}

// applyDraftFlags copies every flag the user set into the session draft.
func applyDraftFlags(cmd *cobra.Command, sess *catalog.EditSession) error {
	f := cmd.Flags()
	fields := []struct {
		flag string
		dst  *string
	}{
		{"sku", &sess.Draft.SKU},
		{"name", &sess.Draft.Name},
		{"price", &sess.Draft.Price},
		{"description", &sess.Draft.Description},
		{"short-description", &sess.Draft.ShortDescription},
		{"tags", &sess.Draft.Tags},
		{"brand", &sess.Draft.Brand},
		{"seo-description", &sess.Draft.SEODescription},
		{"focus-keyword", &sess.Draft.FocusKeyword},
	}
	for _, field := range fields {
		if f.Changed(field.flag) {
			*field.dst, _ = f.GetString(field.flag)
		}
	}

	if f.Changed("category") {
		path, _ := f.GetString("category")
		if err := sess.SelectCategory(path); err != nil {
			return fmt.Errorf("%w (use --new-category to add it)", err)
		}
	}
	if f.Changed("new-category") {
		text, _ := f.GetString("new-category")
		sess.EnterCategory(text)
	}
	return nil
}

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	Args:  cobra.NoArgs,
	RunE: withApp("AddProduct", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		svc := a.Service()
		sess := svc.NewProductSession()
		if err := applyDraftFlags(cmd, sess); err != nil {
			return err
		}

		p, err := svc.SubmitEdit()
		if p != nil {
			fmt.Printf("Added %s (%s) id=%s\n", p.Name, p.SKU, p.ID)
		}
		return err
	}),
}

var productEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a product",
	Args:  cobra.ExactArgs(1),
	RunE: withApp("UpdateProduct", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		svc := a.Service()
		existing, ok := svc.Product(args[0])
		if !ok {
			return fmt.Errorf("product not found: %s", args[0])
		}

		sess := svc.StartEdit(existing)
		if err := applyDraftFlags(cmd, sess); err != nil {
			svc.CancelEdit()
			return err
		}

		p, err := svc.SubmitEdit()
		if p != nil {
			fmt.Printf("Updated %s (%s)\n", p.Name, p.SKU)
		}
		return err
	}),
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: withApp("ListProducts", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		products := a.Service().Products()
		if len(products) == 0 {
			fmt.Println("No products yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSKU\tNAME\tPRICE\tCATEGORY")
		for _, p := range products {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.SKU, p.Name, p.Price, p.Categories)
		}
		return w.Flush()
	}),
}

var productShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: withApp("ShowProduct", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		p, ok := a.Service().Product(args[0])
		if !ok {
			return fmt.Errorf("product not found: %s", args[0])
		}

		fmt.Printf("ID:                %s\n", p.ID)
		fmt.Printf("SKU:               %s\n", p.SKU)
		fmt.Printf("Name:              %s\n", p.Name)
		fmt.Printf("Price:             %s\n", p.Price)
		fmt.Printf("Category:          %s\n", p.Categories)
		fmt.Printf("Tags:              %s\n", p.Tags)
		fmt.Printf("Brand:             %s\n", p.Brand)
		fmt.Printf("Short description: %s\n", p.ShortDescription)
		fmt.Printf("Description:       %s\n", p.Description)
		fmt.Printf("SEO description:   %s (%d/160)\n", p.SEODescription, len([]rune(p.SEODescription)))
		fmt.Printf("Focus keyword:     %s\n", p.FocusKeyword)
		return nil
	}),
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: withApp("DeleteProduct", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		p, err := a.Service().DeleteProduct(args[0])
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("product not found: %s", args[0])
		}
		fmt.Printf("Deleted %s (%s)\n", p.Name, p.SKU)
		return nil
	}),
}

var productDeleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every product",
	Args:  cobra.NoArgs,
	RunE: withApp("DeleteAllProducts", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		n, err := a.Service().DeleteAllProducts()
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d product(s)\n", n)
		return nil
	}),
}

// exportOptions builds ExportOptions from the --encrypt and --stdout flags.
func exportOptions(cmd *cobra.Command) catalog.ExportOptions {
	opts := catalog.ExportOptions{}
	opts.Encrypt, _ = cmd.Flags().GetBool("encrypt")
	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		opts.Writer = os.Stdout
	}
	return opts
}

// printExport reports a delivered export on stderr, keeping stdout for the file.
func printExport(res *catalog.ExportResult, what string, toStdout bool) {
	if toStdout {
		fmt.Fprintf(os.Stderr, "Exported %d %s (%d bytes)\n", res.Count, what, res.Size)
		return
	}
	fmt.Printf("Exported %d %s to %s (%d bytes)\n", res.Count, what, res.Name, res.Size)
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export products as a WooCommerce CSV",
	Args:  cobra.NoArgs,
	RunE: withApp("ExportProducts", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		opts := exportOptions(cmd)
		res, err := a.Service().ExportProducts(cmd.Context(), opts)
		if res != nil {
			printExport(res, "product(s)", opts.Writer != nil)
		}
		return err
	}),
}

// category command
var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage saved categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved categories",
	RunE: withApp("ListCategories", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		categories := a.Service().Categories()
		if len(categories) == 0 {
			fmt.Println("No saved categories.")
			return nil
		}
		for _, c := range categories {
			fmt.Println(c)
		}
		return nil
	}),
}

var categoryAddCmd = &cobra.Command{
	Use:   "add PATH",
	Short: "Save a category path",
	Args:  cobra.ExactArgs(1),
	RunE: withApp("AddCategory", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		added, err := a.Service().AddCategory(args[0])
		if err != nil {
			return err
		}
		if !added {
			fmt.Println("Category already saved.")
			return nil
		}
		fmt.Printf("Saved category: %s\n", strings.TrimSpace(args[0]))
		return nil
	}),
}

var categoryImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import categories from a .txt file",
	Args:  cobra.ExactArgs(1),
	RunE: withApp("ImportCategories", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		mode := catalog.ModeMerge
		if replace, _ := cmd.Flags().GetBool("replace"); replace {
			mode = catalog.ModeReplace
		}

		n, err := a.ImportCategoriesFile(args[0], mode)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d categories (%s), %d saved\n", n, mode, len(a.Service().Categories()))
		return nil
	}),
}

var categoryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved categories as a text file",
	Args:  cobra.NoArgs,
	RunE: withApp("ExportCategories", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		opts := exportOptions(cmd)
		res, err := a.Service().ExportCategories(cmd.Context(), opts)
		if res != nil {
			printExport(res, "categories", opts.Writer != nil)
		}
		return err
	}),
}

var categoryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved category",
	Args:  cobra.NoArgs,
	RunE: withApp("ClearCategories", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		n, err := a.Service().ClearCategories()
		if err != nil {
			return err
		}
		fmt.Printf("Cleared %d categories\n", n)
		return nil
	}),
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View and clear the activity log",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent activity",
	RunE: withApp("ListHistory", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		limit, _ := cmd.Flags().GetInt("limit")

		entries := a.Service().History()
		if len(entries) == 0 {
			fmt.Println("No activity recorded.")
			return nil
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		for _, e := range entries {
			fmt.Printf("%s  %-30s  %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Action, e.Product)
		}
		return nil
	}),
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the activity log",
	Args:  cobra.NoArgs,
	RunE: withApp("ClearHistory", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		n, err := a.Service().ClearHistory()
		if err != nil {
			return err
		}
		fmt.Printf("Cleared %d history entries\n", n)
		return nil
	}),
}

// store command
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local store",
}

var storeBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the store to the export destination",
	Args:  cobra.NoArgs,
	RunE: withApp("BackupStore", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		res, err := a.Service().BackupStore(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Store backed up to %s (%d bytes)\n", res.Name, res.Size)
		return nil
	}),
}

// decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt NAME",
	Short: "Decrypt an encrypted export to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: withApp("DecryptExport", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		if !a.EncryptionConfigured() {
			return fmt.Errorf("encryption keys not configured (run `catalog config keys init`)")
		}
		passphrase, err := app.ReadPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		return a.Service().DecryptExport(cmd.Context(), args[0], passphrase, os.Stdout)
	}),
}

// status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog totals and check the export destination",
	Args:  cobra.NoArgs,
	RunE: withApp("Status", func(cmd *cobra.Command, args []string, a *app.CatalogApp) error {
		s := a.Service().Status()
		fmt.Printf("Products:   %d\n", s.Products)
		fmt.Printf("Categories: %d\n", s.Categories)
		fmt.Printf("History:    %d\n", s.History)

		destStatus := "ok"
		if err := a.CheckDestination(cmd.Context()); err != nil {
			destStatus = err.Error()
		}
		fmt.Printf("Destination: %s\n", destStatus)

		encStatus := "not configured"
		if a.EncryptionConfigured() {
			encStatus = "configured"
		}
		fmt.Printf("Encryption: %s\n", encStatus)
		return nil
	}),
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to confirmation prompts")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configKeysCmd)
	configKeysCmd.AddCommand(configKeysInitCmd)

	// product subcommands
	productCmd.AddCommand(productAddCmd)
	addDraftFlags(productAddCmd)
	productCmd.AddCommand(productEditCmd)
	addDraftFlags(productEditCmd)
	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productShowCmd)
	productCmd.AddCommand(productDeleteCmd)
	productCmd.AddCommand(productDeleteAllCmd)

	// category subcommands
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryImportCmd)
	categoryImportCmd.Flags().Bool("replace", false, "Replace the saved list instead of adding to it")
	categoryCmd.AddCommand(categoryExportCmd)
	categoryExportCmd.Flags().Bool("encrypt", false, "Encrypt the export to the configured public key")
	categoryExportCmd.Flags().Bool("stdout", false, "Write the file to stdout")
	categoryCmd.AddCommand(categoryClearCmd)

	// history subcommands
	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().IntP("limit", "n", 50, "Maximum number of entries to show")
	historyCmd.AddCommand(historyClearCmd)

	storeCmd.AddCommand(storeBackupCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(productCmd)
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().Bool("encrypt", false, "Encrypt the export to the configured public key")
	exportCmd.Flags().Bool("stdout", false, "Write the file to stdout")
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(statusCmd)
}
