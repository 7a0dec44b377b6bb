package chart

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type BagTestSuite struct {
	suite.Suite
}

func TestBagSuite(t *testing.T) {
	suite.Run(t, new(BagTestSuite))
}

func (suite *BagTestSuite) TestMergeOverrideWins() {
	base := Bag{"a": 1, "b": 2}
	override := Bag{"b": 3}

	merged := MergeBags(base, override)

	suite.Equal(1, merged["a"])
	suite.Equal(3, merged["b"])
}

func (suite *BagTestSuite) TestMergeNestedBags() {
	base := Bag{"a": 1, "b": Bag{"c": 2}}
	override := Bag{"b": Bag{"d": 3}}

	merged := MergeBags(base, override)

	suite.Equal(1, merged["a"])
	suite.Equal(Bag{"c": 2, "d": 3}, merged["b"])
}

func (suite *BagTestSuite) TestMergeDoesNotMutateBase() {
	base := Bag{"a": 1, "b": Bag{"c": 2}}
	override := Bag{"a": 10, "b": Bag{"c": 20, "d": 3}}

	_ = MergeBags(base, override)

	suite.Equal(Bag{"a": 1, "b": Bag{"c": 2}}, base)
}

func (suite *BagTestSuite) TestMergeDoesNotAliasNestedOverride() {
	override := Bag{"b": Bag{"c": 2}}

	merged := MergeBags(Bag{}, override)

	merged["b"].(Bag)["c"] = 99
	suite.Equal(2, override["b"].(Bag)["c"])
}

func (suite *BagTestSuite) TestMergeAcceptsPlainMaps() {
	base := Bag{"b": map[string]any{"c": 2}}
	override := Bag{"b": map[string]any{"d": 3}}

	merged := MergeBags(base, override)

	suite.Equal(Bag{"c": 2, "d": 3}, merged["b"])
}

func (suite *BagTestSuite) TestMergeScalarReplacesNested() {
	base := Bag{"b": Bag{"c": 2}}
	override := Bag{"b": 7}

	merged := MergeBags(base, override)

	suite.Equal(7, merged["b"])
}

func (suite *BagTestSuite) TestMergeNestedReplacesScalar() {
	base := Bag{"b": 7}
	override := Bag{"b": Bag{"c": 2}}

	merged := MergeBags(base, override)

	suite.Equal(Bag{"c": 2}, merged["b"])
}

func (suite *BagTestSuite) TestMergeEmptyOverride() {
	base := Bag{"a": 1}

	merged := MergeBags(base, Bag{})

	suite.Equal(base, merged)
}

func (suite *BagTestSuite) TestCloneNil() {
	var b Bag

	cloned := b.Clone()

	suite.NotNil(cloned)
	suite.Empty(cloned)
}

func (suite *BagTestSuite) TestCloneDeep() {
	base := Bag{"b": Bag{"c": 2}}

	cloned := base.Clone()

	cloned["b"].(Bag)["c"] = 99
	suite.Equal(2, base["b"].(Bag)["c"])
}
