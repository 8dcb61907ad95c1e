package capacity

import "github.com/vsinha/moldplan/pkg/application/dto"

// AllocateHours fills machines in order, each up to capPerMachine hours.
// Machines left over receive zero; hours beyond total capacity are not assigned.
func AllocateHours(clusterHours float64, machineIDs []string, capPerMachine float64) []dto.MachineAllocation {
	allocations := make([]dto.MachineAllocation, 0, len(machineIDs))
	remaining := clusterHours

	for _, machineID := range machineIDs {
		assigned := 0.0
		switch {
		case remaining <= 0:
		case remaining > capPerMachine:
			assigned = capPerMachine
		default:
			assigned = remaining
		}
		remaining -= assigned
		allocations = append(allocations, dto.MachineAllocation{
			MachineID:     machineID,
			AssignedHours: assigned,
		})
	}

	return allocations
}
