package device

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/gousb"
	"github.com/iwtcode/graphtecAdapter/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrDeviceNotFound возвращается, когда устройство из дескриптора
	// отсутствует на шине. Гонка между обнаружением и открытием возможна;
	// вызывающая сторона должна повторить обнаружение.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrEndpointNotFound возвращается, когда у интерфейса нет требуемой
	// bulk-конечной точки.
	ErrEndpointNotFound = errors.New("bulk endpoint not found")
)

// Session владеет открытым устройством, захваченным интерфейсом и
// разрешенными конечными точками. Живет в течение одного запроса статуса
// или одной передачи задания; Close обязан вызываться на каждом пути
// выхода, иначе интерфейс останется захваченным и устройство будет
// недоступно до переподключения.
type Session struct {
	desc models.DeviceDescriptor
	out  *gousb.OutEndpoint
	in   *gousb.InEndpoint

	closeOnce sync.Once
	release   func()

	logger *logrus.Logger
}

// Open находит устройство по дескриптору, отсоединяет конфликтующий драйвер
// ядра, выбирает активную конфигурацию, захватывает интерфейс 0 и разрешает
// bulk-конечные точки. Сбои отсоединения драйвера и выбора конфигурации
// проглатываются: на реальном железе они часто безвредны, а успех
// фактически определяется разрешением конечных точек.
func Open(ctx *gousb.Context, desc models.DeviceDescriptor, logger *logrus.Logger) (*Session, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(desc.VendorID), gousb.ID(desc.ProductID))
	if err != nil {
		return nil, fmt.Errorf("failed to open device %s: %w", desc.DisplayName, err)
	}
	if dev == nil {
		return nil, fmt.Errorf("%w: %s (%04x:%04x)", ErrDeviceNotFound, desc.DisplayName, desc.VendorID, desc.ProductID)
	}

	if err := dev.SetAutoDetach(true); err != nil {
		logger.WithError(err).Debug("Kernel driver detach not available, continuing")
	}

	cfgNum, err := dev.ActiveConfigNum()
	if err != nil {
		logger.WithError(err).Debug("Active configuration query failed, assuming config 1")
		cfgNum = 1
	}
	cfg, err := dev.Config(cfgNum)
	if err != nil {
		_ = dev.Close()
		return nil, fmt.Errorf("%w: configuration %d unavailable: %v", ErrEndpointNotFound, cfgNum, err)
	}

	intf, err := cfg.Interface(0, 0)
	if err != nil {
		_ = cfg.Close()
		_ = dev.Close()
		return nil, fmt.Errorf("%w: interface claim failed: %v", ErrEndpointNotFound, err)
	}

	s := &Session{
		desc:   desc,
		logger: logger,
		release: func() {
			intf.Close()
			_ = cfg.Close()
			_ = dev.Close()
		},
	}

	outDesc, inDesc := bulkEndpoints(intf.Setting)
	if outDesc == nil {
		s.Close()
		return nil, fmt.Errorf("%w: no bulk OUT endpoint on interface 0", ErrEndpointNotFound)
	}
	if s.out, err = intf.OutEndpoint(outDesc.Number); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: OUT endpoint %d: %v", ErrEndpointNotFound, outDesc.Number, err)
	}
	// IN-конечная точка нужна только протоколу статуса; ее отсутствие не
	// мешает передаче задания.
	if inDesc != nil {
		if s.in, err = intf.InEndpoint(inDesc.Number); err != nil {
			logger.WithError(err).Debug("Bulk IN endpoint unavailable, status queries disabled")
			s.in = nil
		}
	}

	logger.WithFields(logrus.Fields{
		"device": desc.DisplayName,
		"out":    outDesc.Number,
		"has_in": s.in != nil,
	}).Debug("Device session opened")

	return s, nil
}

// Descriptor возвращает дескриптор устройства сессии.
func (s *Session) Descriptor() models.DeviceDescriptor {
	return s.desc
}

// Close освобождает интерфейс и закрывает устройство. Идемпотентен и
// безопасен на любом пути выхода; ошибки освобождения игнорируются.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.release != nil {
			s.release()
		}
	})
}

// bulkEndpoints находит в настройке интерфейса дескрипторы bulk-конечных
// точек OUT и IN. Любой из результатов может быть nil.
func bulkEndpoints(setting gousb.InterfaceSetting) (out, in *gousb.EndpointDesc) {
	for _, ep := range setting.Endpoints {
		if ep.TransferType != gousb.TransferTypeBulk {
			continue
		}
		ep := ep
		switch ep.Direction {
		case gousb.EndpointDirectionOut:
			if out == nil {
				out = &ep
			}
		case gousb.EndpointDirectionIn:
			if in == nil {
				in = &ep
			}
		}
	}
	return out, in
}
