package pipeline

import "strings"

// GroupKey identifica um grupo de registros
type GroupKey = string

// KeyFunc extrai a chave de agrupamento de um registro
type KeyFunc func(Record) GroupKey

// Valores padrão usados quando a dimensão vem vazia do provedor
const (
	DefaultDevice   = "UNKNOWN"
	DefaultChannel  = "Direct"
	DefaultPage     = "/"
	DefaultQuery    = "unknown"
	DefaultKeyword  = "unknown"
	DefaultCampaign = "Unknown campaign"
	DefaultDate     = "unknown"

	// TotalKey agrupa todos os registros em um único grupo
	TotalKey = "total"

	compositeSeparator = "\x1f"
)

// Group dobra os registros por chave, preservando a ordem do provedor dentro
// de cada grupo. Entrada vazia resulta em mapa vazio.
func Group(records []Record, key KeyFunc) map[GroupKey][]Record {
	grouped := make(map[GroupKey][]Record)
	for _, rec := range records {
		k := key(rec)
		grouped[k] = append(grouped[k], rec)
	}
	return grouped
}

// DimensionKey agrupa pela dimensão name, substituindo vazio por fallback
func DimensionKey(name, fallback string) KeyFunc {
	return func(r Record) GroupKey {
		if v := r.Dimension(name); v != "" {
			return v
		}
		return fallback
	}
}

// SingleKey coloca todos os registros no mesmo grupo
func SingleKey() KeyFunc {
	return func(Record) GroupKey { return TotalKey }
}

// CompositeKey concatena várias chaves; use SplitKey para desfazer
func CompositeKey(keys ...KeyFunc) KeyFunc {
	return func(r Record) GroupKey {
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k(r)
		}
		return strings.Join(parts, compositeSeparator)
	}
}

// SplitKey separa uma chave criada por CompositeKey
func SplitKey(key GroupKey) []string {
	return strings.Split(key, compositeSeparator)
}
