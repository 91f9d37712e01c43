package taxonomy

import "github.com/siherrmann/tripler/model"

// academicDefinitions is the relation vocabulary for academic knowledge graphs
var academicDefinitions = []Definition{
	{
		Tag:         model.RelationAuthorship,
		Description: "Author created/wrote a paper or work",
		Examples: []string{
			"Johnson et al. authored 'Neural Networks for KG'",
			"The paper by Smith and collaborators...",
			"'Graph Embeddings' was written by Chen et al.",
		},
		TypicalPatterns: []string{"wrote", "authored", "published by", "by [author]"},
		Inverse:         "authored_by",
	},
	{
		Tag:         model.RelationCitation,
		Description: "Paper cites or references another paper",
		Examples: []string{
			"Johnson et al. (2023) cite Smith et al. (2022)",
			"Building on prior work [Smith 2020]...",
			"As shown by Chen et al. [15]...",
		},
		TypicalPatterns: []string{"cites", "references", "builds on", "[citation]", "et al."},
		Inverse:         "cited_by",
	},
	{
		Tag:         model.RelationAffiliation,
		Description: "Author affiliated with an institution or organization",
		Examples: []string{
			"Alice Johnson at Stanford University",
			"Smith, researcher at Google DeepMind",
			"Chen is affiliated with MIT CSAIL",
		},
		TypicalPatterns: []string{"at", "affiliated with", "from", "researcher at", "professor at"},
		Inverse:         "employs",
	},
	{
		Tag:         model.RelationPublication,
		Description: "Paper published in a venue (conference, journal)",
		Examples: []string{
			"Published in Nature Communications",
			"Presented at ACL 2024",
			"Appeared in ICML proceedings",
		},
		TypicalPatterns: []string{"published in", "appeared in", "presented at", "proceedings of"},
		Inverse:         "published",
	},
	{
		Tag:         model.RelationContribution,
		Description: "Author made contributions to a concept, field, or area",
		Examples: []string{
			"Johnson's contributions to graph neural networks",
			"Smith pioneered work in knowledge embeddings",
			"Chen developed novel attention mechanisms",
		},
		TypicalPatterns: []string{"contributed to", "pioneered", "developed", "introduced"},
		Inverse:         "contributed_by",
	},
	{
		Tag:         model.RelationBuildsOn,
		Description: "Concept or work builds upon another concept or work",
		Examples: []string{
			"TransE builds on word2vec embeddings",
			"GAT extends the GCN architecture",
			"Our method is based on prior work in...",
		},
		TypicalPatterns: []string{"builds on", "extends", "based on", "inspired by", "improves upon"},
		Inverse:         "foundation_for",
	},
	{
		Tag:         model.RelationStudies,
		Description: "Paper investigates, analyzes, or studies a concept or problem",
		Examples: []string{
			"This paper studies link prediction methods",
			"We analyze knowledge graph completion",
			"The work investigates embedding techniques",
		},
		TypicalPatterns: []string{"studies", "investigates", "analyzes", "examines", "explores"},
		Inverse:         "studied_by",
	},
	{
		Tag:         model.RelationCollaboration,
		Description: "Authors collaborated on research or papers",
		Examples: []string{
			"Johnson and Smith co-authored three papers",
			"Chen collaborated with the Stanford team",
			"Joint work between MIT and Google",
		},
		TypicalPatterns: []string{"co-authored", "collaborated", "joint work", "with"},
		Inverse:         "collaborated_with",
	},
	{
		Tag:         model.RelationFunding,
		Description: "Organization funded research or project",
		Examples: []string{
			"Funded by National Science Foundation",
			"NSF grant NSF-2024-001 supported this work",
			"Google Research provided funding",
		},
		TypicalPatterns: []string{"funded by", "supported by", "grant", "funding from"},
		Inverse:         "funded",
	},
	{
		Tag:         model.RelationSupervision,
		Description: "Advisor supervised student's research",
		Examples: []string{
			"Dr. Smith supervised Johnson's PhD research",
			"Advised by Professor Chen",
			"Martinez was Johnson's doctoral advisor",
		},
		TypicalPatterns: []string{"supervised", "advised", "advisor", "mentor"},
		Inverse:         "supervised_by",
	},
}

var academic = mustNew(academicDefinitions...)

// Default returns the shared academic taxonomy
func Default() *Taxonomy {
	return academic
}

func mustNew(definitions ...Definition) *Taxonomy {
	t, err := New(definitions...)
	if err != nil {
		panic(err)
	}
	return t
}
