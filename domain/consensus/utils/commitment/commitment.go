// Package commitment implements Pedersen commitments over edwards25519.
//
// A commitment to value v with blinding factor k is k·G + v·H, where G is the
// group base point and H is a second generator with no known discrete log
// relative to G. Commitments are additively homomorphic:
// C(k1, v1) + C(k2, v2) == C(k1+k2, v1+v2).
package commitment

import (
	"encoding/binary"

	"github.com/Grrwahrr/tari/domain/consensus/model"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
)

// valueGeneratorSeed seeds the derivation of H
const valueGeneratorSeed = "horizon-sync pedersen value generator H"

type factory struct {
	suite *edwards25519.SuiteEd25519
	h     kyber.Point
}

// NewFactory returns a new Pedersen commitment factory
func NewFactory() model.CommitmentFactory {
	return newFactory()
}

func newFactory() *factory {
	suite := edwards25519.NewBlakeSHA256Ed25519()
	h := suite.Point().Pick(suite.XOF([]byte(valueGeneratorSeed)))
	return &factory{suite: suite, h: h}
}

// Commit returns blinding·G + value·H
func (f *factory) Commit(blinding *externalapi.BlindingFactor, value uint64) (*externalapi.Commitment, error) {
	k := f.scalarFromBlindingFactor(blinding)
	kG := f.suite.Point().Mul(k, nil)
	vH := f.suite.Point().Mul(f.scalarFromValue(value), f.h)
	return f.pointToCommitment(f.suite.Point().Add(kG, vH))
}

// CommitValue is Commit with the arguments named the way value commitments
// are usually described. Both produce identical results.
func (f *factory) CommitValue(blinding *externalapi.BlindingFactor, value uint64) (*externalapi.Commitment, error) {
	return f.Commit(blinding, value)
}

// AddCommitments returns a + b
func (f *factory) AddCommitments(a, b *externalapi.Commitment) (*externalapi.Commitment, error) {
	pointA, err := f.pointFromCommitment(a)
	if err != nil {
		return nil, err
	}
	pointB, err := f.pointFromCommitment(b)
	if err != nil {
		return nil, err
	}
	return f.pointToCommitment(f.suite.Point().Add(pointA, pointB))
}

// SumCommitments returns the sum of commitments
func (f *factory) SumCommitments(commitments []*externalapi.Commitment) (*externalapi.Commitment, error) {
	sum := f.suite.Point().Null()
	for i, commitment := range commitments {
		point, err := f.pointFromCommitment(commitment)
		if err != nil {
			return nil, errors.Wrapf(err, "commitment #%d", i)
		}
		sum = sum.Add(sum, point)
	}
	return f.pointToCommitment(sum)
}

// AddBlindingFactors returns a + b modulo the group order
func (f *factory) AddBlindingFactors(a, b *externalapi.BlindingFactor) (*externalapi.BlindingFactor, error) {
	sum := f.suite.Scalar().Add(f.scalarFromBlindingFactor(a), f.scalarFromBlindingFactor(b))
	return f.scalarToBlindingFactor(sum)
}

// RandomBlindingFactor returns a uniformly random blinding factor
func RandomBlindingFactor() *externalapi.BlindingFactor {
	f := newFactory()
	blinding, err := f.scalarToBlindingFactor(f.suite.Scalar().Pick(f.suite.RandomStream()))
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. a freshly picked scalar always marshals"))
	}
	return blinding
}

// BlindingFactorFromUint64 returns the blinding factor encoding the scalar n
func BlindingFactorFromUint64(n uint64) *externalapi.BlindingFactor {
	blinding := &externalapi.BlindingFactor{}
	binary.LittleEndian.PutUint64(blinding[:8], n)
	return blinding
}

func (f *factory) scalarFromValue(value uint64) kyber.Scalar {
	var valueBytes [8]byte
	binary.LittleEndian.PutUint64(valueBytes[:], value)
	return f.suite.Scalar().SetBytes(valueBytes[:])
}

// scalarFromBlindingFactor reads blinding as a little-endian integer reduced
// modulo the group order, so every 32-byte string is a valid blinding factor.
func (f *factory) scalarFromBlindingFactor(blinding *externalapi.BlindingFactor) kyber.Scalar {
	return f.suite.Scalar().SetBytes(blinding[:])
}

func (f *factory) scalarToBlindingFactor(scalar kyber.Scalar) (*externalapi.BlindingFactor, error) {
	scalarBytes, err := scalar.MarshalBinary()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(scalarBytes) != externalapi.BlindingFactorSize {
		return nil, errors.Errorf("unexpected scalar size %d", len(scalarBytes))
	}
	blinding := &externalapi.BlindingFactor{}
	copy(blinding[:], scalarBytes)
	return blinding, nil
}

func (f *factory) pointFromCommitment(commitment *externalapi.Commitment) (kyber.Point, error) {
	point := f.suite.Point()
	err := point.UnmarshalBinary(commitment[:])
	if err != nil {
		return nil, errors.Wrapf(err, "malformed commitment %s", commitment)
	}
	return point, nil
}

func (f *factory) pointToCommitment(point kyber.Point) (*externalapi.Commitment, error) {
	pointBytes, err := point.MarshalBinary()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(pointBytes) != externalapi.CommitmentSize {
		return nil, errors.Errorf("unexpected point size %d", len(pointBytes))
	}
	commitment := &externalapi.Commitment{}
	copy(commitment[:], pointBytes)
	return commitment, nil
}
