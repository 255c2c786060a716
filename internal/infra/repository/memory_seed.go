package repository

import "github.com/BruksfildServices01/barber-booking/internal/models"

const DemoSlug = "barbearia-demo"

// SeedDemo cria a barbearia de demonstração do modo em memória:
// dois profissionais, três serviços, seg–sex 09–18, sábado 09–16.
func SeedDemo(repo *MemoryRepository) models.Barbershop {
	shop := repo.AddBarbershop(models.Barbershop{
		Name:              "Barbearia Demo",
		Slug:              DemoSlug,
		Description:       "Cortes modernos e barba tradicional",
		Phone:             "+5511955550123",
		Address:           "Rua Augusta, 123",
		City:              "São Paulo",
		Timezone:          "America/Sao_Paulo",
		Currency:          "BRL",
		MinAdvanceMinutes: 120,
		Active:            true,
	})

	repo.AddStaff(models.Staff{BarbershopID: shop.ID, Name: "Carlos Silva", Role: "owner", Active: true})
	repo.AddStaff(models.Staff{BarbershopID: shop.ID, Name: "Rafael Souza", Role: "barber", Active: true})

	repo.AddService(models.Service{BarbershopID: shop.ID, Name: "Corte", DurationMin: 30, Price: 50, Category: "Cabelo", Active: true})
	repo.AddService(models.Service{BarbershopID: shop.ID, Name: "Corte + Barba", DurationMin: 45, Price: 70, Category: "Completo", Active: true})
	repo.AddService(models.Service{BarbershopID: shop.ID, Name: "Degradê", DurationMin: 40, Price: 60, Category: "Moderno", Active: true})

	for d := 1; d <= 5; d++ {
		repo.AddWorkingHours(models.WorkingHours{
			BarbershopID: shop.ID, Weekday: d,
			StartTime: "09:00", EndTime: "18:00",
			LunchStart: "12:00", LunchEnd: "13:00",
			Active: true,
		})
	}
	repo.AddWorkingHours(models.WorkingHours{BarbershopID: shop.ID, Weekday: 6, StartTime: "09:00", EndTime: "16:00", Active: true})
	repo.AddWorkingHours(models.WorkingHours{BarbershopID: shop.ID, Weekday: 0, Active: false})

	return shop
}
