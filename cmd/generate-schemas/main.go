// Command generate-schemas emits the JSON schema for every framework/lot
// service submission from the frameworks content checkout. The Data API uses
// these schemas to validate incoming services.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/content"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/schema"
)

type schemaTarget struct {
	title         string
	frameworkSlug string
	lotSlug       string
}

var schemaTargets = []schemaTarget{
	{"G-Cloud 7 SCS", "g-cloud-7", "scs"},
	{"G-Cloud 7 IaaS", "g-cloud-7", "iaas"},
	{"G-Cloud 7 PaaS", "g-cloud-7", "paas"},
	{"G-Cloud 7 SaaS", "g-cloud-7", "saas"},
	{"Digital Outcomes and Specialists Digital outcomes", "digital-outcomes-and-specialists", "digital-outcomes"},
	{"Digital Outcomes and Specialists Digital specialists", "digital-outcomes-and-specialists", "digital-specialists"},
	{"Digital Outcomes and Specialists User research studios", "digital-outcomes-and-specialists", "user-research-studios"},
	{"Digital Outcomes and Specialists User research participants", "digital-outcomes-and-specialists", "user-research-participants"},
	{"G-Cloud 12 Cloud hosting", "g-cloud-12", "cloud-hosting"},
	{"G-Cloud 12 Cloud software", "g-cloud-12", "cloud-software"},
	{"G-Cloud 12 Cloud support", "g-cloud-12", "cloud-support"},
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var contentPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "generate-schemas",
		Short: "Generate service submission JSON schemas from frameworks content",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateAll(contentPath, outputPath)
		},
	}
	cmd.Flags().StringVar(&contentPath, "content-path", ".", "Path to the frameworks content checkout")
	cmd.Flags().StringVar(&outputPath, "output-path", "schemas", "Directory to write schema files into")
	return cmd
}

func generateAll(contentPath, outputPath string) error {
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return err
	}

	loader := content.NewLoader(contentPath)
	loaded := map[string]bool{}
	for _, target := range schemaTargets {
		if loaded[target.frameworkSlug] {
			continue
		}
		if err := loader.LoadManifest(target.frameworkSlug, "services", "edit_submission"); err != nil {
			return fmt.Errorf("loading %s: %w", target.frameworkSlug, err)
		}
		loaded[target.frameworkSlug] = true
	}

	// The loader is read-only once manifests are parsed, so schemas for all
	// lots can be emitted concurrently.
	var g errgroup.Group
	for _, target := range schemaTargets {
		target := target
		g.Go(func() error {
			return generateOne(loader, outputPath, target)
		})
	}
	return g.Wait()
}

func generateOne(loader *content.Loader, outputPath string, target schemaTarget) error {
	builder, err := loader.GetBuilder(target.frameworkSlug, "edit_submission")
	if err != nil {
		return fmt.Errorf("%s: %w", target.frameworkSlug, err)
	}
	builder = builder.Filter(map[string]string{"lot": target.lotSlug})

	doc, err := schema.Emit(builder, target.title)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", target.frameworkSlug, target.lotSlug, err)
	}

	name := fmt.Sprintf("services-%s-%s.json", target.frameworkSlug, target.lotSlug)
	return os.WriteFile(filepath.Join(outputPath, name), doc, 0o644)
}
