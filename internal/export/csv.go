package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/vitor-labes/price-compare/internal/domain"
)

const outputDir = "exports"

// ToCSV writes the comparison table in the order given; the sorter already
// owns presentation order.
func ToCSV(entries []domain.GroupedEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("nenhuma entrada para exportar")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("erro ao criar diretório exports: %w", err)
	}

	filename := fmt.Sprintf("comparison_%s.csv",
		time.Now().Format("20060102_150405"))

	filepath := filepath.Join(outputDir, filename)

	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo: %w", err)
	}
	defer file.Close()

	file.WriteString("\uFEFF")

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{
		"Produto", "Moeda", "Preço", "Países", "Total de Países",
	}); err != nil {
		return fmt.Errorf("erro ao escrever cabeçalho: %w", err)
	}

	for _, entry := range entries {
		if err := writer.Write([]string{
			entry.Product,
			entry.Currency,
			fmt.Sprintf("%.2f", entry.Cost),
			strings.Join(mapset.Sorted(entry.Countries), ", "),
			strconv.Itoa(entry.Countries.Cardinality()),
		}); err != nil {
			slog.Error("erro ao escrever linha",
				"product", entry.Product,
				"error", err,
			)
			continue
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("erro ao finalizar escrita: %w", err)
	}

	slog.Info("CSV exportado com sucesso",
		"filepath", filepath,
		"total_entries", len(entries),
	)

	return nil
}
