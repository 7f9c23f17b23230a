package conflict

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Index is the persisted mapping from cluster id to Cluster. Cluster ids
// are string-encoded positive integers on disk but are handled as integers
// internally; IDs returns them in ascending numeric order.
type Index struct {
	clusters map[int]Cluster
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{clusters: make(map[int]Cluster)}
}

// IDs returns every cluster id present in the index, ascending.
func (idx *Index) IDs() []int {
	ids := make([]int, 0, len(idx.clusters))
	for id := range idx.clusters {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Get returns the cluster for id and whether it exists.
func (idx *Index) Get(id int) (Cluster, bool) {
	c, ok := idx.clusters[id]
	return c, ok
}

// Len returns the number of clusters in the index.
func (idx *Index) Len() int {
	return len(idx.clusters)
}

// MaxID returns the largest cluster id in the index, or 0 if empty.
func (idx *Index) MaxID() int {
	max := 0
	for id := range idx.clusters {
		if id > max {
			max = id
		}
	}
	return max
}

// NextID returns MaxID()+1, the id the store assigns to a newly created
// cluster.
func (idx *Index) NextID() int {
	return idx.MaxID() + 1
}

// Insert appends pair to the cluster named id, creating it if absent.
// Together with Replace it is how a new cluster id enters the index;
// callers never synthesize ids outside of assignment or reclustering.
func (idx *Index) Insert(id int, pair Pair) {
	idx.clusters[id] = append(idx.clusters[id], pair)
}

// Replace overwrites the cluster at id wholesale, creating it if absent.
// Used by the reclustering engine to install freshly agglomerated clusters.
func (idx *Index) Replace(id int, c Cluster) {
	idx.clusters[id] = c
}

// Delete removes a cluster id entirely.
func (idx *Index) Delete(id int) {
	delete(idx.clusters, id)
}

// Clone returns a deep copy of the index.
func (idx *Index) Clone() *Index {
	out := NewIndex()
	for id, c := range idx.clusters {
		cp := make(Cluster, len(c))
		copy(cp, c)
		out.clusters[id] = cp
	}
	return out
}

// AllPairs returns every pair in the index along with the cluster id it
// belongs to, iterated in ascending id order and insertion order within a
// cluster.
func (idx *Index) AllPairs() []struct {
	ClusterID int
	Pair      Pair
} {
	var out []struct {
		ClusterID int
		Pair      Pair
	}
	for _, id := range idx.IDs() {
		for _, p := range idx.clusters[id] {
			out = append(out, struct {
				ClusterID int
				Pair      Pair
			}{ClusterID: id, Pair: p})
		}
	}
	return out
}

// MarshalJSON renders the index as an object keyed by decimal cluster id,
// sorted numerically so output is deterministic across runs. encoding/json
// sorts map[string]X keys lexicographically when marshalling, which is not
// numeric order for ids >= 10, so the object is built by hand to preserve
// ascending numeric order instead.
func (idx *Index) MarshalJSON() ([]byte, error) {
	ids := idx.IDs()
	buf := []byte("{")
	for i, id := range ids {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(strconv.Itoa(id))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(idx.clusters[id])
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// UnmarshalJSON parses the on-disk object-of-arrays shape back into an
// Index. Non-numeric keys are rejected.
func (idx *Index) UnmarshalJSON(data []byte) error {
	var raw map[string]Cluster
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	clusters := make(map[int]Cluster, len(raw))
	for key, c := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("conflict: cluster index key %q is not an integer: %w", key, err)
		}
		clusters[id] = c
	}
	idx.clusters = clusters
	return nil
}
