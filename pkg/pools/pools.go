// Package pools provides object pooling for reducing GC pressure.
//
// Traversals over large follow graphs allocate several node-indexed
// slices per BFS source. The pools here hand those slices back out across
// passes:
//
//   - IntPool: []int scratch (queues, stacks, distances)
//   - Float64Pool: []float64 scratch (path counts, dependencies)
package pools
