package router

import "github.com/siherrmann/tripler/model"

// CorroborationBoost is added to a validator triple that confirms an uncertain candidate
const CorroborationBoost = 0.05

// merge keeps the trusted candidates and appends every validator triple.
// Validator triples sharing the (subject, object) pair of an uncertain
// candidate are boosted. The relation does not take part in the match.
// Uncertain candidates themselves are never returned.
func merge(high []model.Triple, low []model.Triple, validated []model.Triple) []model.Triple {
	merged := make([]model.Triple, 0, len(high)+len(validated))
	merged = append(merged, high...)

	uncertain := make(map[model.EntityPair]struct{}, len(low))
	for _, c := range low {
		uncertain[c.Pair()] = struct{}{}
	}

	for _, v := range validated {
		if _, ok := uncertain[v.Pair()]; ok {
			v = v.WithConfidence(v.Confidence + CorroborationBoost)
		}
		merged = append(merged, v)
	}

	return merged
}
