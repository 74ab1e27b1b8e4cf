package assemblers

import (
	"context"
	"fmt"

	"github.com/agrosense/agrosense/pkg/config"
	"github.com/agrosense/agrosense/pkg/eventbus"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/middlewares/eventpub"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/mqtt"
	"github.com/agrosense/agrosense/pkg/realtime"
	"github.com/agrosense/agrosense/pkg/routes"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/agrosense/agrosense/pkg/storage/postgres"
)

const serviceID = "agrosense"

// AgroSenseServices bundles every assembled service of the monolith.
type AgroSenseServices struct {
	DeviceManager services.DeviceManagerService
	Telemetry     services.TelemetryService
	AgroData      services.AgroDataService
	Cultivation   services.CultivationService
	Auth          services.AuthService
	Chatbot       services.ChatbotService
	Hub           *realtime.Hub
	MQTTGateway   *mqtt.Gateway
}

func AssembleAgroSenseWithHTTPServer(conf config.AgroSenseConfig, serviceInfo models.APIServiceInfo) (*AgroSenseServices, int, error) {
	svcs, err := AssembleAgroSenseServices(conf)
	if err != nil {
		return nil, -1, fmt.Errorf("could not assemble AgroSense services. Exiting: %s", err)
	}

	lHttp := helpers.SetupLogger(conf.Server.LogLevel, "AgroSense", "HTTP Server")

	httpEngine := routes.NewGinEngine(lHttp, svcs.Auth)
	httpGrp := httpEngine.Group("/api")
	routes.NewAuthHTTPLayer(httpGrp, svcs.Auth, lHttp)
	routes.NewDeviceManagerHTTPLayer(httpGrp, svcs.DeviceManager, lHttp)
	routes.NewTelemetryHTTPLayer(httpGrp, svcs.Telemetry, lHttp)
	routes.NewAgroDataHTTPLayer(httpGrp, svcs.AgroData, lHttp)
	routes.NewCultivationHTTPLayer(httpGrp, svcs.Cultivation, lHttp)
	routes.NewChatbotHTTPLayer(httpGrp, svcs.Chatbot, lHttp)
	routes.NewRealtimeHTTPLayer(httpGrp, svcs.Hub, lHttp)

	port, err := routes.RunHttpRouter(lHttp, httpEngine, conf.Server, serviceInfo)
	if err != nil {
		return nil, -1, fmt.Errorf("could not run AgroSense http server: %s", err)
	}

	return svcs, port, nil
}

func AssembleAgroSenseServices(conf config.AgroSenseConfig) (*AgroSenseServices, error) {
	lSvc := helpers.SetupLogger(conf.Logs.Level, "AgroSense", "Service")
	lStorage := helpers.SetupLogger(conf.Storage.LogLevel, "AgroSense", "Storage")

	engine, err := postgres.NewStorageEngine(lStorage, conf.Storage)
	if err != nil {
		return nil, fmt.Errorf("could not create storage engine: %s", err)
	}

	devicesStorage, err := engine.GetDevicesStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get devices storage: %s", err)
	}

	telemetryStorage, err := engine.GetTelemetryStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get telemetry storage: %s", err)
	}

	cropsStorage, err := engine.GetCropsStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get crops storage: %s", err)
	}

	diseasesStorage, err := engine.GetDiseasesStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get diseases storage: %s", err)
	}

	soilTypesStorage, err := engine.GetSoilTypesStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get soil types storage: %s", err)
	}

	scheduleRulesStorage, err := engine.GetScheduleRulesStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get schedule rules storage: %s", err)
	}

	plansStorage, err := engine.GetCultivationPlansStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get cultivation plans storage: %s", err)
	}

	usersStorage, err := engine.GetUsersStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get users storage: %s", err)
	}

	deviceSvc := services.NewDeviceManagerService(services.DeviceManagerBuilder{
		Logger:           lSvc,
		DevicesStorage:   devicesStorage,
		TelemetryStorage: telemetryStorage,
	})

	var sensorPublisher services.SensorEventPublisher

	lMessaging := helpers.SetupLogger(conf.PublisherEventBus.LogLevel, "AgroSense", "Event Bus")

	lHub := helpers.SetupLogger(conf.Logs.Level, "AgroSense", "Realtime Hub")
	hub := realtime.NewHub(lHub)

	if conf.PublisherEventBus.Enabled {
		lMessaging.Infof("Publisher Event Bus is enabled")

		pub, sub, err := eventbus.NewEventBusEngine(lMessaging, conf.PublisherEventBus)
		if err != nil {
			return nil, fmt.Errorf("could not create Event Bus engine: %s", err)
		}

		cloudEventPub := &eventpub.CloudEventPublisher{
			Publisher: pub,
			ServiceID: serviceID,
			Logger:    lMessaging,
		}

		deviceSvcBackend := deviceSvc.(*services.DeviceManagerServiceBackend)
		deviceSvc = eventpub.NewDeviceEventPublisher(eventpub.NewEventPublisherWithSourceMiddleware(cloudEventPub, models.DeviceManagerSource))(deviceSvc)
		deviceSvcBackend.SetService(deviceSvc)

		sensorPublisher = eventpub.NewEventPublisherWithSourceMiddleware(cloudEventPub, models.TelemetrySource)

		forwarder := realtime.NewForwarder(hub, sub, lHub)
		if err := forwarder.Run(context.Background()); err != nil {
			return nil, fmt.Errorf("could not run realtime forwarder: %s", err)
		}
	}

	telemetrySvc := services.NewTelemetryService(services.TelemetryBuilder{
		Logger:           lSvc,
		DevicesStorage:   devicesStorage,
		TelemetryStorage: telemetryStorage,
		EventPublisher:   sensorPublisher,
	})

	agroDataSvc := services.NewAgroDataService(services.AgroDataBuilder{
		Logger:           lSvc,
		CropsStorage:     cropsStorage,
		DiseasesStorage:  diseasesStorage,
		SoilTypesStorage: soilTypesStorage,
		SchedulesStorage: scheduleRulesStorage,
	})

	cultivationSvc := services.NewCultivationService(services.CultivationBuilder{
		Logger:       lSvc,
		PlansStorage: plansStorage,
		AgroData:     agroDataSvc,
	})

	authSvc := services.NewAuthService(services.AuthBuilder{
		Logger:       lSvc,
		UsersStorage: usersStorage,
		Config:       conf.Auth,
	})

	chatbotSvc := services.NewChatbotService(services.ChatbotBuilder{
		Logger:   lSvc,
		AgroData: agroDataSvc,
	})

	var gateway *mqtt.Gateway
	if conf.MQTTGateway.Enabled {
		lMqtt := helpers.SetupLogger(conf.MQTTGateway.LogLevel, "AgroSense", "MQTT Gateway")
		gateway = mqtt.NewGateway(lMqtt, conf.MQTTGateway, telemetrySvc)
		if err := gateway.Connect(); err != nil {
			return nil, fmt.Errorf("could not connect MQTT gateway: %s", err)
		}
	}

	return &AgroSenseServices{
		DeviceManager: deviceSvc,
		Telemetry:     telemetrySvc,
		AgroData:      agroDataSvc,
		Cultivation:   cultivationSvc,
		Auth:          authSvc,
		Chatbot:       chatbotSvc,
		Hub:           hub,
		MQTTGateway:   gateway,
	}, nil
}
