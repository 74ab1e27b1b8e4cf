package resources

import "github.com/agrosense/agrosense/pkg/models"

type GetDevicesResponse struct {
	IterableList[models.Device]
}
