// Package analytics реализует движок фильтрации и агрегации датасета оттока
// и фасад запросов, которым пользуются HTTP-обработчики и CLI.
package analytics

import "github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"

// View упорядоченное подмножество строк снимка датасета.
// Хранит индексы в исходном снимке, данные не копируются.
type View struct {
	dataset *models.Dataset
	indices []int
}

// NewView возвращает представление всех строк снимка.
func NewView(d *models.Dataset) View {
	n := d.Len()
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return View{dataset: d, indices: indices}
}

// Len возвращает количество строк в представлении.
func (v View) Len() int { return len(v.indices) }

// At возвращает i-ю строку представления.
func (v View) At(i int) *models.Record {
	return v.dataset.At(v.indices[i])
}

// Indices возвращает индексы строк в исходном снимке.
func (v View) Indices() []int {
	out := make([]int, len(v.indices))
	copy(out, v.indices)
	return out
}

func (v View) where(keep func(*models.Record) bool) View {
	indices := make([]int, 0, len(v.indices))
	for _, idx := range v.indices {
		if keep(v.dataset.At(idx)) {
			indices = append(indices, idx)
		}
	}
	return View{dataset: v.dataset, indices: indices}
}
