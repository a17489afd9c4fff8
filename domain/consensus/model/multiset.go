package model

import "github.com/Grrwahrr/tari/domain/consensus/model/externalapi"

// Multiset is an order-independent hash of a set of elements
type Multiset interface {
	Add(data []byte)
	Remove(data []byte)
	Hash() *externalapi.DomainHash
	Serialize() []byte
}
