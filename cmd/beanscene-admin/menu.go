package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/application/usecase"
	"github.com/jhoicas/beanscene-api/internal/domain"
)

// menuFile formato de menu.yaml.
type menuFile struct {
	Categories []menuCategory `yaml:"categories"`
}

type menuCategory struct {
	Name  string     `yaml:"name"`
	Items []menuItem `yaml:"items"`
}

type menuItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Available   *bool  `yaml:"available"`
	GlutenFree  bool   `yaml:"glutenFree"`
	DietType    string `yaml:"dietType"`
	Allergens   string `yaml:"allergens"`
	ImagePath   string `yaml:"imagePath"`
}

// seedResult conteo de lo creado y lo omitido por existir.
type seedResult struct {
	CategoriesCreated int
	CategoriesSkipped int
	ItemsCreated      int
	ItemsSkipped      int
}

func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Carga y consulta del menú",
	}
	cmd.AddCommand(newMenuSeedCmd(), newMenuListCmd())
	return cmd
}

func newMenuSeedCmd() *cobra.Command {
	var file string
	var latin1 bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea categorías e ítems desde un YAML; lo ya existente se omite",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("abrir %s: %w", file, err)
			}
			defer f.Close()

			menu, err := parseMenu(f, latin1)
			if err != nil {
				return err
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			res, err := seedMenu(cmd.Context(), e.categories, e.items, menu)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Categorías: %d creadas, %d existentes. Ítems: %d creados, %d existentes\n",
				res.CategoriesCreated, res.CategoriesSkipped, res.ItemsCreated, res.ItemsSkipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "menu.yaml", "ruta del YAML")
	cmd.Flags().BoolVar(&latin1, "latin1", false, "el archivo está en ISO-8859-1")
	return cmd
}

func newMenuListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista los ítems del menú por categoría",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			items, err := e.items.List(cmd.Context())
			if err != nil {
				return err
			}
			return printItems(cmd.OutOrStdout(), items)
		},
	}
}

// parseMenu decodifica menu.yaml; con latin1 transcodifica desde ISO-8859-1.
func parseMenu(r io.Reader, latin1 bool) (*menuFile, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	var m menuFile
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decodificar menú: %w", err)
	}
	for _, c := range m.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, errors.New("decodificar menú: categoría sin nombre")
		}
	}
	return &m, nil
}

// seedMenu crea lo que falta. Una categoría existente (mismo nombre) y un ítem existente
// (mismo nombre en la misma categoría) se omiten, así que repetir la carga no duplica.
func seedMenu(ctx context.Context, categories *usecase.CategoryUseCase, items *usecase.ItemUseCase, m *menuFile) (seedResult, error) {
	var res seedResult
	current, err := items.List(ctx)
	if err != nil {
		return res, err
	}
	existing := make(map[string]bool, len(current))
	for _, it := range current {
		existing[it.CategoryName+"\x00"+it.Name] = true
	}

	for _, c := range m.Categories {
		name := strings.TrimSpace(c.Name)
		_, err := categories.Create(ctx, dto.CreateCategoryRequest{Name: name})
		switch {
		case err == nil:
			res.CategoriesCreated++
		case errors.Is(err, domain.ErrDuplicate):
			res.CategoriesSkipped++
		default:
			return res, fmt.Errorf("categoría %q: %w", name, err)
		}

		for _, it := range c.Items {
			key := name + "\x00" + strings.TrimSpace(it.Name)
			if existing[key] {
				res.ItemsSkipped++
				continue
			}
			req, err := it.request(name)
			if err != nil {
				return res, err
			}
			if _, err := items.Create(ctx, req); err != nil {
				return res, fmt.Errorf("ítem %q: %w", it.Name, err)
			}
			existing[key] = true
			res.ItemsCreated++
		}
	}
	return res, nil
}

func (it menuItem) request(category string) (dto.ItemRequest, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(it.Price))
	if err != nil {
		return dto.ItemRequest{}, fmt.Errorf("ítem %q: precio %q inválido", it.Name, it.Price)
	}
	req := dto.ItemRequest{
		Name:         strings.TrimSpace(it.Name),
		Description:  it.Description,
		Price:        price,
		Available:    it.Available == nil || *it.Available,
		GlutenFree:   it.GlutenFree,
		DietType:     it.DietType,
		Allergens:    it.Allergens,
		CategoryName: category,
	}
	if it.ImagePath != "" {
		p := it.ImagePath
		req.ImagePath = &p
	}
	return req, nil
}

func printItems(w io.Writer, items []dto.ItemResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORÍA\tÍTEM\tPRECIO\tDISPONIBLE\tID")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", it.CategoryName, it.Name, it.Price.StringFixed(2), it.Available, it.ID)
	}
	return tw.Flush()
}
