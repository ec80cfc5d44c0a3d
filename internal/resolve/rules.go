package resolve

// defineRule produces at most one define from the resolver inputs. A nil
// define with a nil error means the rule does not apply.
type defineRule struct {
	name string
	emit func(in Inputs) (*Define, error)
}

// defineRules is evaluated in order; the directive's define order is
// exactly this table's order. The order is fixed for reproducible build
// invocations, not for CMake correctness.
var defineRules = []defineRule{
	{
		name: "f2py toggle",
		emit: func(in Inputs) (*Define, error) {
			return &Define{Key: "USE_F2PY", Value: onOff(in.Variants.F2py)}, nil
		},
	},
	{
		name: "extdata2g toggle",
		emit: func(in Inputs) (*Define, error) {
			return &Define{Key: "USE_EXTDATA2G", Value: onOff(in.Variants.ExtData2G)}, nil
		},
	},
	{
		name: "esmf module path",
		emit: func(in Inputs) (*Define, error) {
			return &Define{Key: "CMAKE_MODULE_PATH", Value: in.Toolchain.ESMFCMakeDir}, nil
		},
	},
	{
		name: "fortran flags",
		emit: func(in Inputs) (*Define, error) {
			if len(in.FortranFlags) == 0 {
				return nil, nil
			}
			return &Define{Key: "CMAKE_Fortran_FLAGS", Value: joinFlags(in.FortranFlags)}, nil
		},
	},
	{
		name: "mpi stack",
		emit: func(in Inputs) (*Define, error) {
			stack, err := MPIStack(in.Toolchain.MPI.Provider)
			if err != nil {
				return nil, err
			}
			return &Define{Key: "MPI_STACK", Value: stack}, nil
		},
	},
}

// MPIStack maps the MPI provider to the short identifier the model's setup
// scripts expect. The provider set is closed; anything else is fatal.
func MPIStack(provider string) (string, error) {
	switch provider {
	case "mpich":
		return "mpich", nil
	case "openmpi":
		return "openmpi", nil
	case "intelmpi", "intel-oneapi-mpi":
		return "intelmpi", nil
	case "mvapich":
		return "mvapich", nil
	case "mpt":
		return "mpt", nil
	}
	return "", configErrorf("unsupported MPI stack %q", provider)
}

func onOff(enabled bool) string {
	if enabled {
		return "ON"
	}
	return "OFF"
}
