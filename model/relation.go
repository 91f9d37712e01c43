package model

// RelationType is a canonical relation tag drawn from a closed taxonomy
type RelationType string

const (
	RelationAuthorship    RelationType = "authorship"
	RelationCitation      RelationType = "citation"
	RelationAffiliation   RelationType = "affiliation"
	RelationPublication   RelationType = "publication"
	RelationContribution  RelationType = "contribution"
	RelationBuildsOn      RelationType = "builds-on"
	RelationStudies       RelationType = "studies"
	RelationCollaboration RelationType = "collaboration"
	RelationFunding       RelationType = "funding"
	RelationSupervision   RelationType = "supervision"
	// RelationNone marks "no relationship detected" and is never a valid tag
	RelationNone RelationType = "none"
)

// String returns the tag as plain text
func (r RelationType) String() string {
	return string(r)
}
