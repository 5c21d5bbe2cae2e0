package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationship_Reverse(t *testing.T) {
	tests := []struct {
		rel  Relationship
		want Relationship
	}{
		{Separate, Separate},
		{DirectChild, DirectParent},
		{DirectChildOnly, DirectParentOnly},
		{DirectParent, DirectChild},
		{DirectParentOnly, DirectChildOnly},
		{Same, Same},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.rel.Reverse(), tt.rel.String())
		assert.Equal(t, tt.rel, tt.rel.Reverse().Reverse(), "reverse is an involution")
	}
}

func TestRelationship_ForFilesystem(t *testing.T) {
	assert.Equal(t, Separate, Same.ForFilesystem())
	for rel := range FilesystemRelationships() {
		assert.Equal(t, rel, rel.ForFilesystem())
	}
}

func TestParseRelationship(t *testing.T) {
	for rel := range PairRelationships() {
		got, err := ParseRelationship(rel.String())
		require.NoError(t, err)
		assert.Equal(t, rel, got)
	}

	got, err := ParseRelationship("directchildonly")
	require.NoError(t, err)
	assert.Equal(t, DirectChildOnly, got)

	_, err = ParseRelationship("Grandparent")
	assert.Error(t, err)
}

func TestSequence_Reverse(t *testing.T) {
	a := NewCommand(P1, KindEmpty, NewContent(KindFile, "a"))
	b := NewCommand(P2, KindFile, EmptyContent())
	seq := Sequence{a, b}

	rev := seq.Reverse()
	assert.Equal(t, Sequence{b, a}, rev)
	assert.Equal(t, Sequence{a, b}, seq, "original is not modified")
}

func TestCommandPair_Reverse(t *testing.T) {
	c1 := NewCommand(P1, KindEmpty, NewContent(KindFile, "New1"))
	c2 := NewCommand(P2, KindDir, EmptyContent())
	pair := NewCommandPair(c1, c2, DirectChildOnly)

	rev := pair.Reverse()
	assert.Equal(t, DirectParentOnly, rev.Relationship())
	assert.Equal(t, c2, rev.First())
	assert.Equal(t, c1, rev.Second())
	assert.Equal(t, Sequence{c2, c1}, rev.Sequence())
	assert.Equal(t, pair, rev.Reverse())
}

func TestCommandPairs(t *testing.T) {
	var pairs []CommandPair
	for p := range CommandPairs() {
		pairs = append(pairs, p)
	}
	require.Len(t, pairs, 486)

	perRel := make(map[Relationship]int)
	for _, p := range pairs {
		perRel[p.Relationship()]++
		if p.Relationship() == Same {
			assert.Equal(t, P1, p.First().Path())
			assert.Equal(t, P1, p.Second().Path())
		} else {
			assert.Equal(t, P1, p.First().Path())
			assert.Equal(t, P2, p.Second().Path())
		}
	}
	for rel := range PairRelationships() {
		assert.Equal(t, 81, perRel[rel], rel.String())
	}

	// Generation order: relationships in canonical order, Same last
	assert.Equal(t, Separate, pairs[0].Relationship())
	assert.Equal(t, DirectChild, pairs[81].Relationship())
	assert.Equal(t, Same, pairs[485].Relationship())
}

func TestFilesystem_ApplySequence(t *testing.T) {
	f := NewFilesystem(NewNode(true, EmptyContent(), false), NewNode(true, EmptyContent(), false), Separate)
	f.ApplySequence(Sequence{
		NewCommand(P1, KindEmpty, NewContent(KindFile, "New1")),
		NewCommand(P1, KindFile, NewContent(KindDir, "New2")),
	})

	require.False(t, f.Broken())
	assert.True(t, f.P1().Content().Same(NewContent(KindDir, "New2")))
}
