package discovery

import (
	"testing"

	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestFilter_CategoryScenario(t *testing.T) {
	records := numbered(15)
	for _, i := range []int{2, 7, 11} {
		records[i].Category = project.CategoryEngineering
	}

	got := Filter(records, Criteria{Category: "Engineering", University: All})
	require.Len(t, got, 3)
	for _, r := range got {
		require.Equal(t, project.CategoryEngineering, r.Category)
	}
	require.Equal(t, []string{"p03", "p08", "p12"}, ids(got))
}

func TestFilter_IdentityWhenNoCriteria(t *testing.T) {
	records := numbered(5)
	got := Filter(records, Criteria{Category: All, University: All})
	require.Equal(t, records, got)

	got = Filter(records, Criteria{})
	require.Equal(t, records, got)
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, Criteria{Search: "anything"})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestFilter_SearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	records := []project.Project{
		rec("title", withTitle("Solar IRRIGATION rig")),
		rec("desc", func(p *project.Project) { p.Description = "uses drip irrigation" }),
		rec("creator", func(p *project.Project) { p.Creator.Name = "Irrigation Ivan" }),
		rec("tag", withTags("Smart-Irrigation")),
		rec("none"),
	}

	got := Filter(records, Criteria{Search: "iRRigation"})
	require.Equal(t, []string{"title", "desc", "creator", "tag"}, ids(got))
}

func TestFilter_UniversityAndCategoryCombineWithAnd(t *testing.T) {
	records := []project.Project{
		rec("a", withCategory(project.CategoryHealth), withUniversity("Gulu University")),
		rec("b", withCategory(project.CategoryHealth), withUniversity("Makerere University")),
		rec("c", withCategory(project.CategoryArt), withUniversity("Gulu University")),
	}

	got := Filter(records, Criteria{Category: "Health", University: "Gulu University"})
	require.Equal(t, []string{"a"}, ids(got))
}

func TestFilter_TagsUseOrSemantics(t *testing.T) {
	records := []project.Project{
		rec("ai", withTags("AI/ML")),
		rec("iot", withTags("IoT", "Robotics")),
		rec("both", withTags("AI/ML", "IoT")),
		rec("other", withTags("VR/AR")),
		rec("nil", withTags()),
	}

	got := Filter(records, Criteria{Tags: []string{"AI/ML", "IoT"}})
	require.Equal(t, []string{"ai", "iot", "both"}, ids(got))
}

func TestFilter_TagsAreCaseSensitive(t *testing.T) {
	records := []project.Project{rec("a", withTags("iot"))}
	require.Empty(t, Filter(records, Criteria{Tags: []string{"IoT"}}))
}

func TestFilter_ResultIsSubsetSatisfyingPredicates(t *testing.T) {
	records := []project.Project{
		rec("a", withCategory(project.CategoryHealth), withTags("IoT"), withTitle("Clinic IoT monitor")),
		rec("b", withCategory(project.CategoryHealth), withTags("AI/ML")),
		rec("c", withCategory(project.CategoryMusic), withTags("IoT"), withTitle("Monitor for drums")),
		rec("d", withCategory(project.CategoryHealth), withTags("IoT"), withTitle("Water pump")),
	}
	c := Criteria{Search: "monitor", Category: "Health", University: All, Tags: []string{"IoT"}}

	got := Filter(records, c)
	require.Equal(t, []string{"a"}, ids(got))
	for _, r := range got {
		require.Contains(t, ids(records), r.ID)
		require.True(t, Matches(r, c))
	}
}

func TestCriteria_ActiveCount(t *testing.T) {
	require.Equal(t, 0, Criteria{Category: All, University: All}.ActiveCount())
	require.Equal(t, 0, Criteria{Search: "x"}.ActiveCount())
	require.Equal(t, 4, Criteria{Category: "Art", University: "Gulu University", Tags: []string{"a", "b"}}.ActiveCount())
	require.True(t, Criteria{Category: All}.IsZero())
	require.False(t, Criteria{Search: "x"}.IsZero())
}
