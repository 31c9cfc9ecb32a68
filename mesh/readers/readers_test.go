package readers

import (
	"os"
	"path/filepath"
	"testing"

	cfdmesh "github.com/notargets/gocfd/DG3D/mesh"
	"github.com/notargets/gocfd/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const twoTetNeutral = `        CONTROL INFO 2.0.0
** GAMBIT NEUTRAL FILE
Two tetrahedra sharing a face
PROGRAM:                  Test     VERSION:  1.0
Mon Jan  1 00:00:00 2025
     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL
         5         2         1         1         3         3
ENDOFSECTION
   NODAL COORDINATES 2.0.0
         1   0.00000000000e+00   0.00000000000e+00   0.00000000000e+00
         2   1.00000000000e+00   0.00000000000e+00   0.00000000000e+00
         3   0.00000000000e+00   1.00000000000e+00   0.00000000000e+00
         4   0.00000000000e+00   0.00000000000e+00   1.00000000000e+00
         5   1.00000000000e+00   1.00000000000e+00   1.00000000000e+00
ENDOFSECTION
   ELEMENTS/CELLS 2.0.0
         1         6         4         1         2         3         4
         2         6         4         2         3         4         5
ENDOFSECTION
       BOUNDARY CONDITIONS 2.0.0
wall            1         1         0         0         0         0         0         0
         1         6         1
ENDOFSECTION`

func writeTempNeu(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "two_tets.neu")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadGambitTets(t *testing.T) {
	m, err := ReadMeshFile(writeTempNeu(t, twoTetNeutral))
	require.NoError(t, err)
	t.Log(m)

	assert.Equal(t, 3, m.SpatialDim())
	assert.Equal(t, 5, m.NumCells(0))
	assert.Equal(t, 2, m.NumCells(3))
	assert.Equal(t, 7, m.NumCells(2))
	assert.Equal(t, 9, m.NumCells(1))
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, m.NodePosition(4))

	m.BuildConnectivity()
	shared := 0
	for _, nbrs := range m.EToE {
		for _, n := range nbrs {
			if n >= 0 {
				shared++
			}
		}
	}
	assert.Equal(t, 2, shared, "one interior face seen from both sides")
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadMeshFile(filepath.Join(t.TempDir(), "missing.neu"))
	assert.Error(t, err)
}

func TestFromGoCFDOwnership(t *testing.T) {
	src := &cfdmesh.Mesh{
		Vertices: [][]float64{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1},
		},
		EtoV:         [][]int{{0, 1, 2, 3}, {1, 2, 3, 4}},
		ElementTypes: []utils.ElementType{utils.Tet, utils.Tet},
		EToP:         []int{2, 1},
	}
	m, err := FromGoCFD(src)
	require.NoError(t, err)
	assert.Equal(t, 2, m.OwnerProcID(3, 0))
	assert.Equal(t, 1, m.OwnerProcID(3, 1))
	assert.Equal(t, 2, m.OwnerProcID(0, 0), "vertex only in the first tet")
	assert.Equal(t, 1, m.OwnerProcID(0, 1), "shared vertex takes the lower owner")
	assert.Equal(t, 1, m.OwnerProcID(0, 4))
	assert.Equal(t, []int{1, 2, 3, 4}, m.ElementVertexGIDs(1))
}

func TestFromGoCFDRejectsBadCells(t *testing.T) {
	src := &cfdmesh.Mesh{
		Vertices:     [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		EtoV:         [][]int{{0, 1, 2, 5}},
		ElementTypes: []utils.ElementType{utils.Tet},
	}
	_, err := FromGoCFD(src)
	assert.ErrorIs(t, err, ErrUnsupportedMesh)

	_, err = FromGoCFD(&cfdmesh.Mesh{})
	assert.ErrorIs(t, err, ErrUnsupportedMesh)
}
