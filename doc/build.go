package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/linkfarm/linkfarm/cmd/root"
	"github.com/linkfarm/linkfarm/internal/logger"
	"github.com/linkfarm/linkfarm/internal/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func main() {
	rootCmd := &cobra.Command{
		Use: "build",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
			HiddenDefaultCmd:  true,
		},
	}

	var outputDir string

	siteCmd := &cobra.Command{
		Use:          "site",
		Short:        "Generate Markdown documentation for settings and commands",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return err
			}

			fmt.Println("generating settings documentation")

			if err := generateSettingsDocMarkdown(filepath.Join(outputDir, "settings.md")); err != nil {
				return err
			}

			fmt.Println("generating command documentation")

			if err := doc.GenMarkdownTree(linkfarmCommand(), outputDir); err != nil {
				return err
			}

			fmt.Printf("generated documentation in %s\n", outputDir)

			return nil
		},
	}
	siteCmd.Flags().StringVarP(&outputDir, "output", "o", filepath.Join("doc", "src"), "Where to place generated Markdown")

	var outputManDir string

	manCmd := &cobra.Command{
		Use:          "man",
		Short:        "Generate man pages for all commands",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outputManDir, 0o755); err != nil {
				return err
			}

			header := &doc.GenManHeader{
				Title:   "LINKFARM",
				Section: "1",
				Source:  "linkfarm",
			}

			return doc.GenManTree(linkfarmCommand(), header, outputManDir)
		},
	}
	manCmd.Flags().StringVarP(&outputManDir, "output", "o", "man", "Where to place generated man pages")

	rootCmd.AddCommand(siteCmd, manCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func linkfarmCommand() *cobra.Command {
	cfg := settings.NewSettings()
	cfg.UseDefaultAliases = false

	cmd := root.MainCommand(logger.NewConsoleLoggerWithWriter(io.Discard), cfg)
	cmd.DisableAutoGenTag = true

	return cmd
}

func generateSettingsDocMarkdown(filename string) error {
	var sb strings.Builder

	sb.WriteString("# Settings\n\n")

	defaults := *settings.NewSettings()

	writeSettingsDoc(reflect.TypeFor[settings.Settings](), reflect.ValueOf(defaults), "", &sb, 2)

	return os.WriteFile(filename, []byte(sb.String()), 0o644)
}

func writeHeader(sb *strings.Builder, title string, level int) {
	fmt.Fprintf(sb, "%s %s\n\n", strings.Repeat("#", level), title)
}

func writeItem(sb *strings.Builder, key, desc, defaultValue string) {
	fmt.Fprintf(sb, "- **%s**\n\n  %s\n\n  **Default**: `%s`\n\n", key, desc, defaultValue)
}

func describe(key string) string {
	descriptions := settings.SettingsDocs[key]
	if descriptions.Long != "" {
		return descriptions.Long
	}
	return descriptions.Short
}

func writeSettingsDoc(
	t reflect.Type,
	v reflect.Value,
	path string,
	sb *strings.Builder,
	depth int,
) {
	type nestedField struct {
		field    reflect.StructField
		fieldVal reflect.Value
		fullKey  string
	}

	type configKey struct {
		key          string
		desc         string
		defaultValue string
	}

	var generalItems []configKey
	var nestedFields []nestedField

	for i := range t.NumField() {
		field := t.Field(i)
		koanfKey := field.Tag.Get("koanf")
		if koanfKey == "" {
			continue
		}

		fullKey := path + koanfKey
		fieldVal := v.Field(i)

		if field.Type.Kind() == reflect.Struct {
			nestedFields = append(nestedFields, nestedField{field, fieldVal, fullKey})
		} else {
			generalItems = append(generalItems, configKey{fullKey, describe(fullKey), formatValue(fieldVal)})
		}
	}

	if len(generalItems) > 0 {
		if path == "" {
			writeHeader(sb, "General", 2)
		}

		sort.Slice(generalItems, func(i, j int) bool {
			return generalItems[i].key < generalItems[j].key
		})

		for _, item := range generalItems {
			writeItem(sb, item.key, item.desc, item.defaultValue)
		}
	}

	sort.Slice(nestedFields, func(i, j int) bool {
		return nestedFields[i].fullKey < nestedFields[j].fullKey
	})

	for _, entry := range nestedFields {
		writeHeader(sb, entry.fullKey, depth)
		sb.WriteString(describe(entry.fullKey) + "\n\n")
		writeSettingsDoc(entry.field.Type, entry.fieldVal, entry.fullKey+".", sb, depth+1)
	}
}

func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return "n/a"
	}
	switch v.Kind() {
	case reflect.String:
		if v.String() == "" {
			return `""`
		}
		return fmt.Sprintf(`"%s"`, v.String())
	case reflect.Bool:
		return fmt.Sprintf("%t", v.Bool())
	case reflect.Int, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Map, reflect.Slice:
		if v.Len() == 0 {
			return "[]"
		}
		return "(multiple entries)"
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
