package appointment

// AvailabilityInput é a consulta de horários livres de um profissional
// em uma data de calendário ("2006-01-02", no fuso da barbearia).
type AvailabilityInput struct {
	BarbershopID uint
	StaffID      uint
	ServiceID    uint
	Date         string

	// ExcludePast remove os horários que já passaram (ou que ficam
	// antes da antecedência mínima) quando a data é hoje.
	ExcludePast bool
}

// DateLayout é o formato de data aceito nas consultas.
const DateLayout = "2006-01-02"
