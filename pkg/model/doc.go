// Package model builds the mixed-integer program whose optimum is the graceful
// chromatic number of a graph.
//
// For a graph with maximum degree Δ the model uses the constants
//
//	BigM1 = 2Δ² - Δ + 1
//	BigM2 = 4Δ² - 2Δ
//
// and the variables
//
//	x_v      integer in [1, +inf)   color of vertex v
//	z        integer in [1, BigM1]  span
//	b_i_j    binary, per edge i<j                 orders x_i and x_j
//	c_i_j    binary, per non-adjacent i<j with a common neighbor
//	d_i_j_k  binary, per vertex j and neighbors i<k of j
//
// Each binary selects one side of a linearized disequality:
//
//	x_v - z <= 0
//	x_i - x_j - BigM1*b_i_j >= 1 - BigM1       x_j - x_i + BigM1*b_i_j >= 1
//	x_i - x_j - BigM1*c_i_j >= 1 - BigM1       x_j - x_i + BigM1*c_i_j >= 1
//	x_i + x_k - 2x_j - BigM2*d_i_j_k >= 1 - BigM2
//	2x_j - x_i - x_k + BigM2*d_i_j_k >= 1
//
// The objective minimizes z. The last pair forces |x_i - x_j| != |x_k - x_j|
// for the two edges at j.
//
// A [Model] is immutable after [Build] and can be handed to any number of
// solvers concurrently. [Model.WriteLP] exports it in CPLEX LP format for
// offline solvers.
package model
