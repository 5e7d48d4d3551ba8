package seeders

import "sport-inventory/pkg/constants"

type equipmentSeed struct {
	Name     string
	Quantity int
	Status   constants.EquipmentStatus
}

// Базовый каталог спортзала: категория и её стартовое оборудование.
var catalogSeed = map[string][]equipmentSeed{
	"Мячи": {
		{Name: "Мяч футбольный", Quantity: 10, Status: constants.EquipmentStatusInUse},
		{Name: "Мяч баскетбольный", Quantity: 8, Status: constants.EquipmentStatusInUse},
		{Name: "Мяч волейбольный", Quantity: 6, Status: constants.EquipmentStatusNew},
	},
	"Гимнастика": {
		{Name: "Мат гимнастический", Quantity: 12, Status: constants.EquipmentStatusInUse},
		{Name: "Скакалка", Quantity: 25, Status: constants.EquipmentStatusInUse},
		{Name: "Обруч", Quantity: 15, Status: constants.EquipmentStatusNew},
	},
	"Лёгкая атлетика": {
		{Name: "Секундомер", Quantity: 4, Status: constants.EquipmentStatusInUse},
		{Name: "Эстафетная палочка", Quantity: 10, Status: constants.EquipmentStatusInUse},
	},
	"Инвентарь": {
		{Name: "Конус разметочный", Quantity: 30, Status: constants.EquipmentStatusInUse},
		{Name: "Насос для мячей", Quantity: 2, Status: constants.EquipmentStatusBroken},
	},
}
