// Command vector_gen prints the conformance vectors pinned by the bloom,
// account and shard tests.
package main

import (
	"encoding/hex"
	"fmt"

	"xdao.co/cellconfig/account"
	"xdao.co/cellconfig/bloom"
	"xdao.co/cellconfig/profile"
	"xdao.co/cellconfig/shard"
	"xdao.co/cellconfig/witness"
)

var names = []string{"google", "apple", "microsoft"}

func main() {
	p, err := profile.Lookup(profile.Default)
	if err != nil {
		panic(err)
	}

	f := bloom.New(p.BloomBits, p.BloomProbes)
	for _, n := range names {
		f.InsertString(n)
	}
	fmt.Printf("BLOOM m=%d k=%d\n%s\n", p.BloomBits, p.BloomProbes, hex.EncodeToString(f.Export()))

	ids := make([]account.ID, 0, len(names))
	for _, n := range names {
		id := account.Fingerprint(n, p.FingerprintLength)
		fmt.Printf("FINGERPRINT %s=%s\n", n, id)
		ids = append(ids, id)
	}

	shards, err := shard.Assign(ids, p.ShardCount, p.PerShardLimit)
	if err != nil {
		panic(err)
	}
	for _, s := range shards {
		if len(s.Members) == 0 {
			continue
		}
		pl, err := witness.Wrap(witness.PreservedAccountShard(s.Index), witness.Raw(s.Bytes()), p.WitnessSizeLimit)
		if err != nil {
			panic(err)
		}
		fmt.Printf("SHARD %d\n%s\n", s.Index, pl)
	}
}
