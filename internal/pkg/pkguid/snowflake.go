package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// RandomNode makes NewSnowflake pick a random node ID.
const RandomNode int64 = -1

// epochMillis is 2026-01-01T00:00:00Z.
const epochMillis int64 = 1767225600000

// Snowflake generates numeric IDs using the Snowflake algorithm.
type Snowflake struct {
	node *snowflake.Node
}

func randomNodeID() (int64, error) {
	var nodeID int64
	if err := binary.Read(rand.Reader, binary.BigEndian, &nodeID); err != nil {
		return 0, err
	}

	return nodeID & (1<<snowflake.NodeBits - 1), nil
}

// NewSnowflake constructs a generator for nodeID, which must fit the node
// bits (0..1023 by default). RandomNode picks one at random, which is enough
// for a single dashboard process.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID == RandomNode {
		id, err := randomNodeID()
		if err != nil {
			return nil, fmt.Errorf("random snowflake node: %w", err)
		}
		nodeID = id
	}

	snowflake.Epoch = epochMillis

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new unique numeric ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
