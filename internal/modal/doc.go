// Package modal computes the forced response of a damped rectangular plate by
// modal superposition.
//
// The plate is described by its size a x b, an excitation point, a material
// dispersion constant C (k = sqrt(f/C)) and a damping constant D
// (gamma = D/sqrt(ab)). Free-edge cosine modes
//
//	phi_mn(X, Y) = cos(m*pi*X/a) * cos(n*pi*Y/b),  0 <= m, n <= M, (m,n) != (0,0)
//
// are summed with complex resonance weights
//
//	w_mn = phi_mn(X0, Y0) / ((k^2 - k_mn^2) + 2i*gamma*k)
//
// and [Field.Displacement] returns |4/(ab) * sum w_mn * phi_mn(X, Y)|.
//
// # Caching
//
// Displacement runs once per particle per frame. The weights depend on the
// frequency only through k, so they are kept in a single buffer keyed by the
// last k and rebuilt only when k changes. Changing the excitation, plate size,
// damping or mode limit drops the cache. Queries for two different
// frequencies must not be interleaved expecting both to stay cached.
//
// A Field is not safe for concurrent use: Displacement writes into the cache
// and into per-query scratch buffers.
package modal
