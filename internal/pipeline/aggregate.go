package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// Values é o registro plano de métricas de um grupo
type Values map[string]float64

// Op define como uma métrica é combinada dentro do grupo
type Op int

const (
	OpSum Op = iota
	OpAverage
)

// Averaging escolhe a fórmula de OpAverage.
//
// AveragePairwise reproduz o comportamento histórico do dashboard: o primeiro
// registro define o valor e cada registro seguinte faz (atual + novo) / 2, na
// ordem do provedor. Com mais de dois registros isso NÃO é a média real; o
// peso dos últimos registros é maior. AverageMean é a média aritmética.
type Averaging int

const (
	AveragePairwise Averaging = iota
	AverageMean
)

// ParseAveraging lê o modo configurado ("pairwise" ou "mean")
func ParseAveraging(s string) (Averaging, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pairwise":
		return AveragePairwise, nil
	case "mean":
		return AverageMean, nil
	}
	return AveragePairwise, fmt.Errorf("unknown averaging mode %q", s)
}

// Field declara uma métrica de saída a partir de uma métrica do registro
type Field struct {
	Name   string
	Source string // vazio usa Name
	Op     Op
}

func (f Field) source() string {
	if f.Source == "" {
		return f.Name
	}
	return f.Source
}

// Derived é calculado depois da soma, a partir dos valores já agregados
type Derived struct {
	Name    string
	Compute func(Values) float64
}

// MetricSpec descreve a agregação de um conjunto de métricas
type MetricSpec struct {
	Fields    []Field
	Derived   []Derived
	Averaging Averaging
}

// Aggregate mapeia cada grupo para seu registro agregado
type Aggregate map[GroupKey]Values

// AggregateGroups soma ou tira a média das métricas de cada grupo e então
// calcula os campos derivados. Todos os campos existem em todos os grupos.
func AggregateGroups(grouped map[GroupKey][]Record, spec MetricSpec) Aggregate {
	agg := make(Aggregate, len(grouped))
	for key, records := range grouped {
		agg[key] = spec.fold(records)
	}
	return agg
}

// Fold agrega uma lista de registros em um único registro
func (spec MetricSpec) Fold(records []Record) Values {
	return spec.fold(records)
}

func (spec MetricSpec) fold(records []Record) Values {
	out := make(Values, len(spec.Fields)+len(spec.Derived))

	for _, f := range spec.Fields {
		src := f.source()

		switch f.Op {
		case OpAverage:
			out[f.Name] = spec.average(records, src)
		default:
			sum := 0.0
			for _, r := range records {
				sum += r.Metric(src)
			}
			out[f.Name] = sum
		}
	}

	spec.derive(out)
	return out
}

func (spec MetricSpec) average(records []Record, src string) float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Metric(src)
	}
	return spec.combine(values)
}

// combine aplica o modo de média configurado a uma sequência já ordenada
func (spec MetricSpec) combine(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	if spec.Averaging == AverageMean {
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}

	avg := values[0]
	for _, v := range values[1:] {
		avg = (avg + v) / 2
	}
	return avg
}

func (spec MetricSpec) derive(v Values) {
	for _, d := range spec.Derived {
		v[d.Name] = d.Compute(v)
	}
}

// Total combina todos os grupos em um registro. Campos somados são somados,
// campos de média combinam os valores dos grupos com o mesmo modo de
// Averaging (em ordem crescente de chave) e os derivados são recalculados.
func (a Aggregate) Total(spec MetricSpec) Values {
	keys := make([]GroupKey, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(Values, len(spec.Fields)+len(spec.Derived))

	for _, f := range spec.Fields {
		values := make([]float64, len(keys))
		for i, key := range keys {
			values[i] = a[key][f.Name]
		}

		if f.Op == OpAverage {
			out[f.Name] = spec.combine(values)
			continue
		}

		sum := 0.0
		for _, v := range values {
			sum += v
		}
		out[f.Name] = sum
	}

	spec.derive(out)
	return out
}

// Ratio devolve num/den*scale, ou 0 quando den é 0
func Ratio(num, den, scale float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * scale
}

// RatioOf cria um campo derivado num/den*scale
func RatioOf(name, num, den string, scale float64) Derived {
	return Derived{
		Name: name,
		Compute: func(v Values) float64 {
			return Ratio(v[num], v[den], scale)
		},
	}
}
