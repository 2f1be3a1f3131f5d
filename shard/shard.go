// Package shard distributes account fingerprints over a fixed number of
// capacity-bounded config cells.
package shard

import (
	"bytes"
	"slices"

	"xdao.co/cellconfig/account"
	"xdao.co/cellconfig/cfgerr"
	"xdao.co/cellconfig/molecule"
)

// Shard is one partition of an account set. Members are unique and sorted
// ascending byte-wise.
type Shard struct {
	Index   int
	Members []account.ID
}

// Bytes returns the members concatenated and framed with their total size.
func (s Shard) Bytes() []byte {
	var raw []byte
	for _, m := range s.Members {
		raw = append(raw, m...)
	}
	return molecule.PrependLength(raw)
}

// IndexOf returns the shard an ID belongs to: its first byte modulo k.
func IndexOf(id account.ID, k int) int {
	if len(id) == 0 {
		return 0
	}
	return int(id[0]) % k
}

// Assign partitions ids into exactly k shards. Duplicates are dropped. A shard
// holding more than limit members fails the whole assignment.
func Assign(ids []account.ID, k, limit int) ([]Shard, error) {
	if k <= 0 {
		return nil, cfgerr.New(cfgerr.KindInternal, cfgerr.RuleConfig, "shard count must be positive, got %d", k)
	}
	shards := make([]Shard, k)
	for i := range shards {
		shards[i].Index = i
	}
	for _, id := range ids {
		idx := IndexOf(id, k)
		shards[idx].Members = append(shards[idx].Members, id)
	}
	for i := range shards {
		members := shards[i].Members
		slices.SortFunc(members, func(a, b account.ID) int { return bytes.Compare(a, b) })
		members = slices.CompactFunc(members, func(a, b account.ID) bool { return bytes.Equal(a, b) })
		if len(members) > limit {
			return nil, cfgerr.New(cfgerr.KindShardCapacityExceeded, cfgerr.RuleShardOverflow,
				"shard %d holds %d accounts, limit is %d", i, len(members), limit)
		}
		shards[i].Members = members
	}
	return shards, nil
}
