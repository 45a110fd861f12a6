package device

import (
	"fmt"

	"github.com/google/gousb"
	"github.com/iwtcode/graphtecAdapter/models"
)

// Registry содержит таблицу поддерживаемых плоттеров Graphtec / Silhouette.
// Порядок объявления определяет приоритет при одновременном подключении
// нескольких поддерживаемых устройств.
var Registry = []models.DeviceDescriptor{
	{VendorID: 0x0b4d, ProductID: 0x1123, DisplayName: "Silhouette Portrait"},
	{VendorID: 0x0b4d, ProductID: 0x1121, DisplayName: "Silhouette Cameo"},
	{VendorID: 0x0b4d, ProductID: 0x112f, DisplayName: "Silhouette Cameo 3"},
	{VendorID: 0x0b4d, ProductID: 0x1132, DisplayName: "Silhouette Portrait 2"},
	{VendorID: 0x0b4d, ProductID: 0x111c, DisplayName: "Silhouette SD-1"},
	{VendorID: 0x0b4d, ProductID: 0x111d, DisplayName: "Silhouette SD-2"},
	{VendorID: 0x0b4d, ProductID: 0x110a, DisplayName: "Craft ROBO CC200-20"},
	{VendorID: 0x0b4d, ProductID: 0x111a, DisplayName: "Craft ROBO CC330-20"},
}

// DetectConnected сканирует шину USB и возвращает первый по порядку
// объявления дескриптор из Registry, который сейчас подключен.
// Возвращает nil, если ни один поддерживаемый плоттер не найден.
func DetectConnected(ctx *gousb.Context) (*models.DeviceDescriptor, error) {
	present := make(map[[2]uint16]bool)
	// Предикат всегда отвечает false: устройства только перечисляются,
	// без открытия и захвата.
	_, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		present[[2]uint16{uint16(desc.Vendor), uint16(desc.Product)}] = true
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("usb enumeration failed: %w", err)
	}

	return pickDescriptor(func(vendorID, productID uint16) bool {
		return present[[2]uint16{vendorID, productID}]
	}), nil
}

// pickDescriptor возвращает первый дескриптор Registry, удовлетворяющий
// предикату подключенности.
func pickDescriptor(connected func(vendorID, productID uint16) bool) *models.DeviceDescriptor {
	for i := range Registry {
		if connected(Registry[i].VendorID, Registry[i].ProductID) {
			d := Registry[i]
			return &d
		}
	}
	return nil
}
