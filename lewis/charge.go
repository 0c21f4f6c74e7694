/*
 * charge.go, part of govsepr.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package lewis

import (
	chem "github.com/rmera/govsepr"
)

const optimizeScans = 2

// NeedsOptimization returns true if some atom in s has a nonzero formal charge.
func NeedsOptimization(s chem.Structure) bool {
	for _, v := range s {
		if v.FormalCharge() != 0 {
			return true
		}
	}
	return false
}

// OptimizeFormalCharge tries to lower the total absolute formal charge of s by
// turning lone pairs of peripheral atoms into extra bonds to the central atom.
// Only central atoms from the third period on can take the extra electrons.
// Peripheral atoms are tried from the last to the second, twice, and a change is
// kept only if it strictly lowers the total. s is not modified; the best
// structure found is returned, which is s itself if nothing could be improved.
func OptimizeFormalCharge(s chem.Structure) chem.Structure {
	if len(s) < 2 || !NeedsOptimization(s) || s[0].Period < 3 {
		return s
	}
	best := s
	bestCharge := s.TotalFormalCharge()
	for scan := 0; scan < optimizeScans; scan++ {
		for i := len(best) - 1; i >= 2; i-- {
			if best[i].Lone < 2 {
				continue
			}
			trial := best.Copy()
			trial[i].Lone -= 2
			chem.AddBondPair(trial[0], trial[i])
			if c := trial.TotalFormalCharge(); c < bestCharge {
				best = trial
				bestCharge = c
			}
		}
	}
	return best
}
